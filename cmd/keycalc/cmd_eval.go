package main

import (
	"fmt"
	"strings"

	"keycalc/internal/calc"
	"keycalc/internal/config"
	"keycalc/internal/keymap"
	"keycalc/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// evalCmd types an expression and presses '='.
var evalCmd = &cobra.Command{
	Use:   "eval [expression]",
	Short: "Evaluate an expression and print the display",
	Long: `Types the expression into a fresh calculator, presses '=', and prints
what the display shows. Spaces are ignored; × is accepted for multiplication.

Example:
  keycalc eval "12+3*2"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEval,
}

// keysCmd replays key presses through the keypad dispatch table.
var keysCmd = &cobra.Command{
	Use:   "keys [key...]",
	Short: "Replay a key sequence and print the display",
	Long: `Each argument is either a key name (enter, esc, backspace) or a run of
single-character keys such as "9s" (9 then square root).

Example:
  keycalc keys 16 s
  keycalc keys 4 r enter`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKeys,
}

// initCommandLogging starts file logging for the one-shot commands. Only the
// logging section of config.yaml is read, so a bad ui or sound section does
// not stop eval or keys from working.
func initCommandLogging() {
	ws := workspace
	if ws == "" {
		root, err := config.FindWorkspaceRoot()
		if err != nil {
			logger.Debug("no workspace, file logging off", zap.Error(err))
			return
		}
		ws = root
	}
	if err := logging.Initialize(ws); err != nil {
		logger.Debug("file logging unavailable", zap.Error(err))
		return
	}
	if logging.IsDebugMode() {
		logger.Debug("debug logs enabled", zap.String("workspace", ws))
	}
}

func runEval(cmd *cobra.Command, args []string) error {
	initCommandLogging()
	expr := strings.Join(args, "")
	acc := calc.New(nil)
	for _, r := range expr {
		if r == ' ' || r == '\t' {
			continue
		}
		if res := acc.Append(string(r)); res.Err != nil {
			return res.Err
		}
	}
	res := acc.Evaluate()
	logger.Debug("eval", zap.String("expr", expr), zap.String("display", res.Display))
	fmt.Fprintln(cmd.OutOrStdout(), res.Display)
	if res.Failed() {
		return res.Err
	}
	return nil
}

func runKeys(cmd *cobra.Command, args []string) error {
	initCommandLogging()
	presses, err := splitKeys(args)
	if err != nil {
		return err
	}

	acc := calc.New(nil)
	res := calc.Result{}
	for _, k := range presses {
		c, _ := keymap.Lookup(k)
		if r, ok := keymap.Dispatch(acc, c); ok {
			res = r
			logger.Debug("key", zap.String("key", k), zap.String("action", c.Action.String()), zap.String("display", r.Display))
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), acc.Display())
	if res.Failed() {
		return res.Err
	}
	return nil
}

// splitKeys expands arguments into individual key names. Presentation keys
// (theme, sound, help, quit) are rejected since there is no screen.
func splitKeys(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if c, ok := keymap.Lookup(arg); ok && len([]rune(arg)) > 1 {
			if !c.Action.IsAccumulator() {
				return nil, fmt.Errorf("key %q has no effect outside the interactive calculator", arg)
			}
			out = append(out, arg)
			continue
		}
		for _, r := range arg {
			k := string(r)
			c, ok := keymap.Lookup(k)
			if !ok {
				return nil, fmt.Errorf("unknown key %q", k)
			}
			if !c.Action.IsAccumulator() {
				return nil, fmt.Errorf("key %q has no effect outside the interactive calculator", k)
			}
			out = append(out, k)
		}
	}
	return out, nil
}
