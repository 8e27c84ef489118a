package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tessera/internal/diag"
	"tessera/internal/ir"
	"tessera/internal/irfile"
	"tessera/internal/trace"
)

// image is a loaded IR program together with its encoded bytes.
type image struct {
	path string
	data []byte
	file *irfile.File
	prog *ir.Program
}

// loadImage reads and decodes path. Decoding problems are returned as a
// diagnostic bag so they render like analysis findings.
func loadImage(ctx context.Context, path string) (*image, *diag.Bag, error) {
	_, span := trace.Begin(ctx, trace.ScopePass, "load")
	defer span.End(path)

	format, err := irfile.FormatFor(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read IR image: %w", err)
	}
	file, err := irfile.Unmarshal(data, format)
	if err != nil {
		return nil, loadDiagnostics(path, err), nil
	}
	prog, err := irfile.Decode(file)
	if err != nil {
		return nil, loadDiagnostics(path, err), nil
	}
	return &image{path: path, data: data, file: file, prog: prog}, nil, nil
}

func loadDiagnostics(path string, err error) *diag.Bag {
	bag := diag.NewBag(settings.Analysis.MaxDiagnostics)
	r := diag.NewBagReporter(bag)
	for _, e := range flattenErrors(err) {
		code := diag.IRDecodeError
		switch {
		case errors.Is(e, irfile.ErrUnknownSymbol):
			code = diag.IRUnknownSymbol
		case errors.Is(e, irfile.ErrBadShape), errors.Is(e, irfile.ErrVersion):
			code = diag.IRBadShape
		}
		diag.ReportError(r, code, "", fmt.Sprintf("%s: %v", path, e)).Emit()
	}
	return bag
}

func flattenErrors(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range j.Unwrap() {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	return []error{err}
}

// printDiagnostics renders bag with the configured color mode.
func printDiagnostics(w io.Writer, bag *diag.Bag) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	return diag.Pretty(w, bag, diag.PrettyOpts{
		Color: useColor(settings.Output.Color),
		Notes: true,
	})
}

// mustLoad loads path and fails the command when it does not decode.
func mustLoad(ctx context.Context, w io.Writer, path string) (*image, error) {
	img, bag, err := loadImage(ctx, path)
	if err != nil {
		return nil, err
	}
	if bag != nil {
		if err := printDiagnostics(w, bag); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%s: failed to decode IR image", path)
	}
	return img, nil
}
