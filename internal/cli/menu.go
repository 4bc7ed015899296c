// Package cli runs the interactive pricing menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	pricer "github.com/jwaldner/optionpricer/pricer_lib"
	"github.com/jwaldner/optionpricer/internal/logger"
	"github.com/jwaldner/optionpricer/internal/utils"
)

const banner = "==================================================="

// errQuit ends the menu loop: end of input or a confirmed exit.
var errQuit = errors.New("quit")

// Visualizer turns the last priced option into saved charts.
type Visualizer interface {
	Visualize(ctx context.Context, params pricer.OptionParams) ([]string, error)
}

// Menu reads choices line by line and prints results.
type Menu struct {
	in   *bufio.Scanner
	out  io.Writer
	viz  Visualizer
	last *pricer.OptionParams
}

// NewMenu builds a menu over any reader and writer
func NewMenu(in io.Reader, out io.Writer, viz Visualizer) *Menu {
	return &Menu{
		in:  bufio.NewScanner(in),
		out: out,
		viz: viz,
	}
}

// Run loops until the user confirms exit or input runs out. It only returns
// an error when reading fails.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.showMenu()

		line, err := m.readLine()
		if err != nil {
			return m.finish(err)
		}
		if !isDigits(line) {
			continue
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			continue
		}

		switch choice {
		case 1:
			err = m.priceOption()
		case 2:
			err = m.showGreeks()
		case 3:
			err = m.visualize(ctx)
		case 0:
			err = m.confirmExit()
		}
		if err != nil {
			return m.finish(err)
		}
	}
}

// isDigits reports whether s is non-empty and only ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (m *Menu) showMenu() {
	fmt.Fprintln(m.out, banner)
	fmt.Fprintln(m.out, "Welcome to the Option Pricing Engine!")
	fmt.Fprintln(m.out, "Enter your choice: ")
	fmt.Fprintln(m.out, "1. Calculate option price.")
	fmt.Fprintln(m.out, "2. Calculate option Greeks.")
	fmt.Fprintln(m.out, "3. Provide option and Greeks visualisations.")
	fmt.Fprintln(m.out, "0. Exit program.")
	fmt.Fprintln(m.out, banner)
}

// priceOption prompts until a full set of inputs prices successfully.
func (m *Menu) priceOption() error {
	for {
		params, err := m.promptParams()
		if err == nil {
			var price float64
			if price, err = pricer.Price(params); err == nil {
				fmt.Fprintf(m.out, "\nEuropean %s Option Price: %s\n\n", params.Type.Title(), utils.FormatCurrency(price))
				m.last = &params
				return nil
			}
		}
		var readErr *readError
		if errors.Is(err, errQuit) || errors.As(err, &readErr) {
			return err
		}
		logger.Debug.Printf("⚠️ CLI input rejected: %v", err)
		fmt.Fprintf(m.out, "\nInvalid input: %v\n\n", err)
	}
}

func (m *Menu) promptParams() (pricer.OptionParams, error) {
	var p pricer.OptionParams
	fields := []struct {
		prompt string
		name   string
		dst    *float64
	}{
		{"Enter the current stock price (S): ", "stock price", &p.Spot},
		{"Enter the strike price (K): ", "strike price", &p.Strike},
		{"Enter the time to maturity in years (T): ", "maturity", &p.Maturity},
		{"Enter the risk-free interest rate (as a decimal; 5% as 0.05): ", "rate", &p.Rate},
		{"Enter the option volatility (as a decimal; 20% as 0.2): ", "volatility", &p.Volatility},
	}
	for _, f := range fields {
		raw, err := m.prompt(f.prompt)
		if err != nil {
			return p, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, &pricer.ParamError{Field: f.name, Reason: fmt.Sprintf("must be a number (got %q)", raw)}
		}
		*f.dst = v
	}

	raw, err := m.prompt("Enter the option type ('call' or 'put'): ")
	if err != nil {
		return p, err
	}
	if p.Type, err = pricer.ParseOptionType(raw); err != nil {
		return p, err
	}
	return p, p.Validate()
}

func (m *Menu) showGreeks() error {
	if m.last == nil {
		fmt.Fprintln(m.out, "Please calculate the option price first.")
		return nil
	}

	greeks, err := pricer.CalculateGreeks(*m.last)
	if err != nil {
		fmt.Fprintf(m.out, "\nInvalid input: %v\n\n", err)
		return nil
	}

	values := greeks.Map()
	fmt.Fprintln(m.out, "Option Greeks:")
	for _, name := range pricer.GreekNames {
		fmt.Fprintf(m.out, "    %s: %s\n", name, utils.FormatGreek(values[name]))
	}
	return nil
}

func (m *Menu) visualize(ctx context.Context) error {
	if m.last == nil {
		fmt.Fprintln(m.out, "Please calculate the option price first.")
		return nil
	}

	paths, err := m.viz.Visualize(ctx, *m.last)
	if err != nil {
		logger.Error.Printf("❌ Visualisation failed: %v", err)
		fmt.Fprintf(m.out, "Could not create charts: %v\n", err)
		return nil
	}
	for _, p := range paths {
		fmt.Fprintf(m.out, "Saved chart: %s\n", p)
	}
	return nil
}

func (m *Menu) confirmExit() error {
	answer, err := m.prompt("\nConfirm you would like to exit the program? (yes/no): ")
	if err != nil {
		return err
	}
	if answer == "yes" {
		fmt.Fprintln(m.out, "Exiting program.")
		return errQuit
	}
	return nil
}

func (m *Menu) prompt(text string) (string, error) {
	fmt.Fprint(m.out, text)
	line, err := m.readLine()
	if err != nil {
		return "", err
	}
	return line, nil
}

// readError wraps scanner failures so the prompt loop can tell them apart
// from bad input.
type readError struct{ err error }

func (e *readError) Error() string { return e.err.Error() }
func (e *readError) Unwrap() error { return e.err }

func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", &readError{err: fmt.Errorf("reading input: %w", err)}
		}
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}
