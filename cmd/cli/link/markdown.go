package link

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/ghlink/internal/permalink"
	"github.com/temirov/ghlink/internal/snippet"
	"github.com/temirov/ghlink/internal/ui"
)

const (
	markdownUseConstant                = "markdown <path>[:LINE[-LINE]]"
	markdownShortDescriptionConstant   = "Print and copy a Markdown snippet referencing the GitHub permalink"
	markdownLongDescriptionConstant    = "markdown resolves the GitHub permalink for <path> and renders it together with the selected lines as a fenced Markdown code block."
	flagDialectNameConstant            = "dialect"
	flagDialectDescriptionConstant     = "Markdown dialect"
	flagLanguageNameConstant           = "language"
	flagLanguageDescriptionConstant    = "Language identifier for the code fence (derived from the file extension when omitted)"
	dialectChoiceUsageTemplateConstant = "`<%s>` %s"
	dialectChoiceSeparatorConstant     = "|"
)

// MarkdownCommandBuilder assembles the markdown command.
type MarkdownCommandBuilder struct {
	CommandDependencies
}

// Build constructs the markdown command.
func (builder *MarkdownCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   markdownUseConstant,
		Short: markdownShortDescriptionConstant,
		Long:  markdownLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	registerSharedFlags(command)
	command.Flags().String(flagDialectNameConstant, "", formatDialectUsage())
	command.Flags().String(flagLanguageNameConstant, "", flagLanguageDescriptionConstant)

	return command, nil
}

func (builder *MarkdownCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	notifier := ui.NewConsoleNotifier(builder.resolveConsoleLogger(), builder.resolveProgressWriter(command.ErrOrStderr()))

	dialectValue := configuration.MarkdownDialect
	if command.Flags().Changed(flagDialectNameConstant) {
		dialectValue, _ = command.Flags().GetString(flagDialectNameConstant)
	}
	dialect, dialectError := snippet.ParseDialect(dialectValue)
	if dialectError != nil {
		return notifier.Error(dialectError)
	}
	language, _ := command.Flags().GetString(flagLanguageNameConstant)

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

	markdown, formatError := snippet.Format(dialect, snippet.Snippet{
		Permalink: result.URL,
		FilePath:  target.absolutePath,
		Language:  language,
		StartLine: target.selection.StartLine,
		Text:      snippet.ExtractLines(target.content, target.selection.StartLine, target.selection.EndLine),
	})
	if formatError != nil {
		return notifier.Error(formatError)
	}

	if _, writeError := fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, markdown); writeError != nil {
		return notifier.Error(writeError)
	}

	if !clipboardEnabled(command, configuration) {
		return nil
	}
	if clipboardError := builder.resolveClipboardWriter().Write(markdown); clipboardError != nil {
		return notifier.Error(clipboardError)
	}
	notifier.Info(ui.SnippetCopiedMessage)
	return nil
}

// formatDialectUsage lists the dialects with the default one capitalized.
func formatDialectUsage() string {
	choices := []string{strings.ToUpper(string(snippet.DialectStandard)), string(snippet.DialectHacknote)}
	return fmt.Sprintf(dialectChoiceUsageTemplateConstant, strings.Join(choices, dialectChoiceSeparatorConstant), flagDialectDescriptionConstant)
}
