// Command enquire asks a single question on the terminal and prints the
// answer on stdout, so shell scripts can capture it.
//
//	color=$(enquire --name color --message "Favorite color?" --choice red --choice green --radio)
//	enquire --file question.yaml --json
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nao1215/enquire"
)

// exitInterrupted is the conventional status after Ctrl+C.
const exitInterrupted = 130

type flags struct {
	file         string
	name         string
	message      string
	def          string
	defaultIndex int
	choices      []string
	radio        bool
	expandable   bool
	limit        int
	prefix       string
	errorMessage string
	required     bool
	pattern      string
	mask         string
	theme        string
	asJSON       bool
}

var themes = map[string]*enquire.ColorScheme{
	"default":    enquire.ThemeDefault,
	"dark":       enquire.ThemeDark,
	"accessible": enquire.ThemeAccessible,
	"plain":      enquire.ThemePlain,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(func() (enquire.UI, error) {
		return enquire.NewTerminalUI(nil)
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, enquire.ErrInterrupted) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func newRootCmd(openUI func() (enquire.UI, error)) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "enquire",
		Short: "Ask a question on the terminal and print the answer",
		Long: heredoc.Doc(`
			Ask a question on the terminal and print the answer on stdout.

			The question is drawn on the terminal device, so the answer can be
			captured by a shell. A question can be described with flags or loaded
			from a YAML file; flags given together with --file override the file.

			Keys:
			  Up/Down, k/j      Move in a choice list
			  Space             Toggle the choice under the cursor
			  a / i             Toggle all / invert selection
			  1-9               Jump to a choice
			  Enter             Submit
			  Ctrl+C            Abort (exit status 130)
		`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := buildQuestion(cmd, f)
			if err != nil {
				return err
			}

			theme, err := selectTheme(f.theme)
			if err != nil {
				return err
			}

			ui, err := openUI()
			if err != nil {
				return err
			}
			defer ui.Close()

			p, err := enquire.New(q,
				enquire.WithUI(ui),
				enquire.WithTheme(theme),
				enquire.WithErrorOutput(io.Discard),
			)
			if err != nil {
				return err
			}

			answer, err := p.Run(cmd.Context(), nil)
			if err != nil {
				return err
			}
			return printAnswer(cmd.OutOrStdout(), q.Name, answer, f.asJSON)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "YAML file describing the question")
	fl.StringVarP(&f.name, "name", "n", "answer", "Answer name (key of the JSON output)")
	fl.StringVarP(&f.message, "message", "m", "", "Question text")
	fl.StringVarP(&f.def, "default", "d", "", "Default answer or choice name")
	fl.IntVar(&f.defaultIndex, "default-index", 0, "Index of the default choice")
	fl.StringArrayVarP(&f.choices, "choice", "c", nil, "Choice (repeatable); makes the question a list")
	fl.BoolVar(&f.radio, "radio", false, "Allow a single choice only")
	fl.BoolVar(&f.expandable, "expandable", false, "Resize the list with Shift+Up/Down")
	fl.IntVar(&f.limit, "limit", 0, "Visible rows of the choice list")
	fl.StringVar(&f.prefix, "prefix", "", "Marker shown before the question")
	fl.StringVar(&f.errorMessage, "error-message", "", "Message shown when validation fails")
	fl.BoolVar(&f.required, "required", false, "Reject empty answers")
	fl.StringVar(&f.pattern, "pattern", "", "Regular expression the answer must match")
	fl.StringVar(&f.mask, "mask", "", "Character shown instead of typed input")
	fl.StringVar(&f.theme, "theme", "", "Color theme: default, dark, accessible or plain (NO_COLOR selects plain)")
	fl.BoolVar(&f.asJSON, "json", false, "Print {name: answer} as JSON")

	return cmd
}

func buildQuestion(cmd *cobra.Command, f flags) (enquire.Question, error) {
	var q enquire.Question
	if f.file != "" {
		loaded, err := enquire.LoadQuestion(f.file)
		if err != nil {
			return enquire.Question{}, err
		}
		q = loaded
	}

	changed := cmd.Flags().Changed
	if q.Name == "" || changed("name") {
		q.Name = f.name
	}
	if f.message != "" {
		q.Message = f.message
	}
	if len(f.choices) > 0 {
		q.Choices = enquire.Options(f.choices...)
	}
	switch {
	case changed("default-index"):
		q.Default = f.defaultIndex
	case changed("default"):
		q.Default = f.def
	}
	if changed("radio") {
		q.Radio = f.radio
	}
	if changed("expandable") {
		q.Expandable = f.expandable
	}
	if changed("limit") {
		q.Limit = f.limit
	}
	if f.prefix != "" {
		q.Prefix = f.prefix
	}
	if f.errorMessage != "" {
		q.ErrorMessage = f.errorMessage
	}
	if f.mask != "" {
		q.Mask = enquire.MaskWith(f.mask)
	}

	validators := []enquire.ValidateFunc{}
	if q.Validate != nil {
		validators = append(validators, q.Validate)
	}
	if f.required {
		validators = append(validators, enquire.Required(""))
	}
	if f.pattern != "" {
		re, err := regexp.Compile(f.pattern)
		if err != nil {
			return enquire.Question{}, fmt.Errorf("invalid --pattern: %w", err)
		}
		validators = append(validators, enquire.MatchPattern(re, ""))
	}
	q.Validate = enquire.All(validators...)

	if q.Message == "" {
		return enquire.Question{}, errors.New("a question is required: use --message or --file")
	}
	return q, nil
}

func selectTheme(name string) (*enquire.ColorScheme, error) {
	if name == "" {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return enquire.ThemePlain, nil
		}
		return enquire.ThemeDefault, nil
	}
	theme, ok := themes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return theme, nil
}

func printAnswer(w io.Writer, name string, answer any, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(map[string]any{name: answer})
	}
	switch v := answer.(type) {
	case []string:
		for _, s := range v {
			if _, err := fmt.Fprintln(w, s); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return nil
	default:
		_, err := fmt.Fprintln(w, v)
		return err
	}
}
