package link

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/temirov/ghlink/internal/permalink"
)

const (
	flagZeroBasedNameConstant          = "zero-based"
	flagZeroBasedDescriptionConstant   = "Interpret line numbers as 0-based editor positions"
	flagNoClipboardNameConstant        = "no-clipboard"
	flagNoClipboardDescriptionConstant = "Print the result without copying it to the clipboard"
	readFileErrorTemplateConstant      = "unable to read %s: %w"
)

// resolvedTarget is a file argument resolved against the file on disk.
type resolvedTarget struct {
	absolutePath string
	content      string
	selection    permalink.SelectionRange
}

// firstArgument returns the file argument, or an empty string that resolves to ErrNoActiveSelection.
func firstArgument(arguments []string) string {
	if len(arguments) == 0 {
		return ""
	}
	return arguments[0]
}

func registerSharedFlags(command *cobra.Command) {
	command.Flags().Bool(flagZeroBasedNameConstant, false, flagZeroBasedDescriptionConstant)
	command.Flags().Bool(flagNoClipboardNameConstant, false, flagNoClipboardDescriptionConstant)
}

func clipboardEnabled(command *cobra.Command, configuration CommandConfiguration) bool {
	noClipboard, _ := command.Flags().GetBool(flagNoClipboardNameConstant)
	return configuration.Clipboard && !noClipboard
}

func (dependencies CommandDependencies) resolveTarget(command *cobra.Command, argument string) (resolvedTarget, error) {
	target, parseError := permalink.ParseTarget(argument)
	if parseError != nil {
		return resolvedTarget{}, parseError
	}

	absolutePath, pathError := dependencies.resolvePathResolver().Resolve(target.Path)
	if pathError != nil {
		return resolvedTarget{}, pathError
	}

	contentBytes, readError := os.ReadFile(absolutePath)
	if readError != nil {
		return resolvedTarget{}, fmt.Errorf(readFileErrorTemplateConstant, absolutePath, readError)
	}
	content := string(contentBytes)
	totalLines := permalink.CountLines(content)

	if !target.HasLines() {
		return resolvedTarget{absolutePath: absolutePath, content: content, selection: permalink.WholeFile(totalLines)}, nil
	}

	zeroBased, _ := command.Flags().GetBool(flagZeroBasedNameConstant)
	var selection permalink.SelectionRange
	var selectionError error
	if zeroBased {
		selection, selectionError = permalink.FromZeroBased(target.StartLine, target.EndLine, totalLines)
	} else {
		selection, selectionError = permalink.NewSelectionRange(target.StartLine, target.EndLine, totalLines)
	}
	if selectionError != nil {
		return resolvedTarget{}, selectionError
	}

	return resolvedTarget{absolutePath: absolutePath, content: content, selection: selection}, nil
}
