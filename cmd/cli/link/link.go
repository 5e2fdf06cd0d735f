package link

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/ghlink/internal/permalink"
	"github.com/temirov/ghlink/internal/ui"
)

const (
	linkUseConstant              = "link <path>[:LINE[-LINE]]"
	linkShortDescriptionConstant = "Print and copy the GitHub permalink for a file or line range"
	linkLongDescriptionConstant  = "link resolves the checked-out commit and upstream remote of the repository containing <path> and prints a GitHub permalink anchored to the requested lines."
	outputLineTemplateConstant   = "%s\n"
)

// LinkCommandBuilder assembles the link command.
type LinkCommandBuilder struct {
	CommandDependencies
}

// Build constructs the link command.
func (builder *LinkCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   linkUseConstant,
		Short: linkShortDescriptionConstant,
		Long:  linkLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	registerSharedFlags(command)

	return command, nil
}

func (builder *LinkCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	notifier := ui.NewConsoleNotifier(builder.resolveConsoleLogger(), builder.resolveProgressWriter(command.ErrOrStderr()))

	target, targetError := builder.resolveTarget(command, firstArgument(arguments))
	if targetError != nil {
		return notifier.Error(targetError)
	}

	service, serviceError := builder.buildService(configuration, logger, notifier)
	if serviceError != nil {
		return notifier.Error(serviceError)
	}

	result, resolveError := service.Resolve(command.Context(), permalink.Request{FilePath: target.absolutePath, Selection: target.selection})
	if resolveError != nil {
		return notifier.Error(resolveError)
	}
	for _, notice := range result.Notices {
		notifier.Notice(notice)
	}

	if _, writeError := fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, result.URL); writeError != nil {
		return notifier.Error(writeError)
	}

	if !clipboardEnabled(command, configuration) {
		return nil
	}
	if clipboardError := builder.resolveClipboardWriter().Write(result.URL); clipboardError != nil {
		return notifier.Error(clipboardError)
	}
	notifier.Info(ui.LinkCopiedMessage)
	return nil
}
