package dump

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"klarlint/internal/decl"
	"klarlint/internal/source"
)

// DeclsPretty writes the declaration tree of one parsed file.
func DeclsPretty(w io.Writer, df *decl.File, fs *source.FileSet) error {
	for _, id := range df.Top {
		writeDecl(w, df, fs, id, 0)
	}
	if len(df.Unsafes) > 0 {
		fmt.Fprintln(w)
		for _, r := range df.Unsafes {
			pos, _ := fs.Resolve(r.Span)
			safety := "no SAFETY comment"
			if r.HasSafety {
				safety = "SAFETY documented"
			}
			owner := "?"
			if d := df.Get(r.Owner); d != nil {
				owner = d.Name
			}
			fmt.Fprintf(w, "unsafe block in %s at %d:%d (%s)\n", owner, pos.Line, pos.Col, safety)
		}
	}
	return nil
}

func writeDecl(w io.Writer, df *decl.File, fs *source.FileSet, id decl.ID, depth int) {
	d := df.Get(id)
	if d == nil {
		return
	}
	pos, _ := fs.Resolve(d.Span)
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(w, "%s%s", indent, d.Kind)
	if d.Kind == decl.KindImpl {
		if d.TraitName != "" {
			fmt.Fprintf(w, " %s for %s", d.TraitName, d.TargetType)
		} else {
			fmt.Fprintf(w, " %s", d.TargetType)
		}
	} else if d.Name != "" {
		fmt.Fprintf(w, " %s", d.Name)
	}
	var attrs []string
	if d.IsPublic {
		attrs = append(attrs, "pub")
	}
	if d.HasDoc {
		attrs = append(attrs, "documented")
	}
	if len(attrs) > 0 {
		fmt.Fprintf(w, " [%s]", strings.Join(attrs, ", "))
	}
	fmt.Fprintf(w, " at %d:%d\n", pos.Line, pos.Col)

	switch d.Kind {
	case decl.KindStruct:
		for _, f := range d.Fields {
			vis := ""
			if f.IsPublic {
				vis = "pub "
			}
			fmt.Fprintf(w, "%s  field %s%s: %s\n", indent, vis, f.Name, f.Type)
		}
	case decl.KindEnum:
		for _, v := range d.Variants {
			fmt.Fprintf(w, "%s  variant %s\n", indent, v.Name)
		}
	case decl.KindFunction:
		for _, p := range d.Params {
			fmt.Fprintf(w, "%s  param %s: %s (%s)\n", indent, p.Name, p.Type, p.Mode)
		}
		if d.ReturnType != "" {
			fmt.Fprintf(w, "%s  returns %s\n", indent, d.ReturnType)
		}
	}

	for _, m := range d.Methods {
		writeDecl(w, df, fs, m, depth+1)
	}
	if d.Kind == decl.KindModule {
		df.Walk(func(childID decl.ID, child *decl.Decl) {
			if child.Parent == id {
				writeDecl(w, df, fs, childID, depth+1)
			}
		})
	}
}

type declOutput struct {
	Kind     string       `json:"kind"`
	Name     string       `json:"name,omitempty"`
	Public   bool         `json:"public,omitempty"`
	HasDoc   bool         `json:"has_doc,omitempty"`
	Span     source.Span  `json:"span"`
	Fields   []fieldOut   `json:"fields,omitempty"`
	Variants []string     `json:"variants,omitempty"`
	Params   []paramOut   `json:"params,omitempty"`
	Returns  string       `json:"returns,omitempty"`
	Target   string       `json:"target,omitempty"`
	Trait    string       `json:"trait,omitempty"`
	Methods  []declOutput `json:"methods,omitempty"`
}

type fieldOut struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Public bool   `json:"public,omitempty"`
}

type paramOut struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Mode string `json:"mode"`
}

// DeclsJSON writes the declaration tree as an indented JSON array.
func DeclsJSON(w io.Writer, df *decl.File) error {
	output := make([]declOutput, 0, len(df.Top))
	for _, id := range df.Top {
		output = append(output, declToOutput(df, id))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func declToOutput(df *decl.File, id decl.ID) declOutput {
	d := df.Get(id)
	out := declOutput{
		Kind:    d.Kind.String(),
		Name:    d.Name,
		Public:  d.IsPublic,
		HasDoc:  d.HasDoc,
		Span:    d.Span,
		Returns: d.ReturnType,
		Target:  d.TargetType,
		Trait:   d.TraitName,
	}
	for _, f := range d.Fields {
		out.Fields = append(out.Fields, fieldOut{Name: f.Name, Type: f.Type, Public: f.IsPublic})
	}
	for _, v := range d.Variants {
		out.Variants = append(out.Variants, v.Name)
	}
	for _, p := range d.Params {
		out.Params = append(out.Params, paramOut{Name: p.Name, Type: p.Type, Mode: p.Mode.String()})
	}
	for _, m := range d.Methods {
		out.Methods = append(out.Methods, declToOutput(df, m))
	}
	return out
}
