package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	toss "github.com/SimonDaKappa/go-toss"
	"github.com/SimonDaKappa/go-toss/htmlform"
)

// params are the flags shared by every subcommand.
type params struct {
	formPath   string
	scopeID    string
	configPath string
	dataPath   string
	outPath    string
}

func (p *params) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&p.formPath, "form", "f", "-", "HTML document to read, - for stdin")
	cmd.Flags().StringVarP(&p.scopeID, "scope", "s", "", "id of the element holding the form, the whole document if empty")
	cmd.Flags().StringVarP(&p.configPath, "config", "c", "", "YAML file with toss options")
	cmd.Flags().StringVarP(&p.dataPath, "data", "d", "", "JSON object to fill the form with")
	cmd.Flags().StringVarP(&p.outPath, "out", "o", "", "file to write to instead of stdout")
}

// session is a loaded document with a form over the requested scope.
type session struct {
	doc  *htmlform.Document
	form *toss.Form
}

func (p *params) open() (*session, error) {
	if p.formPath == "-" && p.dataPath == "-" {
		return nil, errors.New("--form and --data cannot both read stdin")
	}

	var opts []toss.Option
	if p.configPath != "" {
		loaded, err := toss.LoadOptionsFile(p.configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, toss.WithOptions(loaded))
	}

	doc, err := withInput(p.formPath, htmlform.Parse)
	if err != nil {
		return nil, err
	}

	scope := doc.Root()
	if p.scopeID != "" {
		if scope, err = doc.Scope(p.scopeID); err != nil {
			return nil, err
		}
	}

	form, err := toss.NewForm(scope, opts...)
	if err != nil {
		return nil, err
	}

	if p.dataPath != "" {
		data, err := withInput(p.dataPath, io.ReadAll)
		if err != nil {
			return nil, err
		}
		if err := form.FillJSON(data); err != nil {
			return nil, fmt.Errorf("failed to fill from %s: %w", p.dataPath, err)
		}
	}

	logger.Verbose("opened", p.formPath, "scope", p.scopeID)
	return &session{doc: doc, form: form}, nil
}

func withInput[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	if path == "-" {
		return read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer f.Close()

	return read(f)
}

func (p *params) output(stdout io.Writer, write func(io.Writer) error) error {
	if p.outPath == "" {
		return write(stdout)
	}

	f, err := os.Create(p.outPath)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runCollect(p *params, stdout io.Writer) error {
	s, err := p.open()
	if err != nil {
		return err
	}

	result := s.form.Collect()
	return p.output(stdout, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	})
}

// runValidate writes the document with every message rendered, and fails
// when any field is missing or invalid.
func runValidate(p *params, stdout io.Writer) error {
	s, err := p.open()
	if err != nil {
		return err
	}

	fe := &toss.FormError{}
	for _, out := range s.form.Validate() {
		switch {
		case out.IsMissing:
			fe.MissingFields = append(fe.MissingFields, out.Field)
		case out.IsInvalid:
			fe.InvalidFields = append(fe.InvalidFields, out.Field)
		}
	}

	if err := p.output(stdout, s.doc.Render); err != nil {
		return err
	}
	if len(fe.MissingFields) > 0 || len(fe.InvalidFields) > 0 {
		return fe
	}
	return nil
}

func runFill(p *params, stdout io.Writer) error {
	if p.dataPath == "" {
		return errors.New("--data is required")
	}

	s, err := p.open()
	if err != nil {
		return err
	}

	return p.output(stdout, s.doc.Render)
}
