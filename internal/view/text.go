package view

import (
	"fmt"
	"io"

	"ecoponto/internal/model"
)

var textPrefixes = map[model.MessageKind]string{
	model.MessageError:   "[erro] ",
	model.MessageInfo:    "[info] ",
	model.MessageLoading: "... ",
}

// WriteClassificationText prints the classification panel for a terminal
func WriteClassificationText(w io.Writer, v *model.ClassificationView) error {
	if v == nil {
		return nil
	}
	for _, m := range v.Messages {
		if _, err := fmt.Fprintln(w, textPrefixes[m.Kind]+m.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteLocationText prints the location panel for a terminal
func WriteLocationText(w io.Writer, v *model.LocationView) error {
	if v == nil {
		return nil
	}
	if v.Notice != nil {
		if _, err := fmt.Fprintln(w, textPrefixes[v.Notice.Kind]+v.Notice.String()); err != nil {
			return err
		}
	}
	if v.Header != nil {
		if _, err := fmt.Fprintln(w, v.Header.String()); err != nil {
			return err
		}
	}
	for i, p := range v.Points {
		if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n   %s\n", i+1, p.Title(), p.Address, p.DirectionsURL); err != nil {
			return err
		}
	}
	return nil
}
