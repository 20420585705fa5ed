// Package layout defines the renderer-neutral node tree a template view
// produces. The HTML and PDF renderers both interpret this tree, so a view
// is a pure function of its record and render mode.
package layout

// Mode controls whether interactive chrome is emitted.
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModePrint       Mode = "print"
	ModeExport      Mode = "export"
)

// ResolveMode folds the three print signals into one mode. Exporting wins
// over printing; either suppresses interactive chrome.
func ResolveMode(hostPrint, printMedia, exporting bool) Mode {
	switch {
	case exporting:
		return ModeExport
	case hostPrint || printMedia:
		return ModePrint
	default:
		return ModeInteractive
	}
}

// Interactive reports whether controls should be rendered.
func (m Mode) Interactive() bool {
	return m == "" || m == ModeInteractive
}

// BlockKind discriminates Block payloads.
type BlockKind string

const (
	BlockHeading    BlockKind = "heading"
	BlockParagraph  BlockKind = "paragraph"
	BlockFields     BlockKind = "fields"
	BlockTable      BlockKind = "table"
	BlockChecklist  BlockKind = "checklist"
	BlockSignatures BlockKind = "signatures"
)

// Letterhead is the organisational header printed on every template.
type Letterhead struct {
	Agency  string `json:"agency"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// FieldLine is a label with its filled-in value.
type FieldLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Wide  bool   `json:"wide,omitempty"`
}

// Checkbox is one independent option of a checklist.
type Checkbox struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Block is one unit of content. Renderers never split a block across a page
// boundary.
type Block struct {
	Kind       BlockKind       `json:"kind"`
	Text       string          `json:"text,omitempty"`
	Level      int             `json:"level,omitempty"`
	Fields     []FieldLine     `json:"fields,omitempty"`
	Columns    []string        `json:"columns,omitempty"`
	Rows       [][]string      `json:"rows,omitempty"`
	Checks     []Checkbox      `json:"checks,omitempty"`
	Signatures []SignatureSlot `json:"signatures,omitempty"`
}

// Document is the rendered form of one record.
type Document struct {
	Template   string     `json:"template"`
	Title      string     `json:"title"`
	Subtitle   string     `json:"subtitle,omitempty"`
	Letterhead Letterhead `json:"letterhead"`
	Blocks     []Block    `json:"blocks"`
	Mode       Mode       `json:"mode"`
	// Placeholder marks the stand-in rendered for unknown templates.
	Placeholder bool `json:"placeholder,omitempty"`
}

// Heading builds a heading block.
func Heading(text string, level int) Block {
	return Block{Kind: BlockHeading, Text: text, Level: level}
}

// Paragraph builds a paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: BlockParagraph, Text: text}
}

// Fields builds a label/value grid.
func Fields(lines ...FieldLine) Block {
	return Block{Kind: BlockFields, Fields: lines}
}

// Line is shorthand for a FieldLine.
func Line(label, value string) FieldLine {
	return FieldLine{Label: label, Value: value}
}

// WideLine spans the full grid width.
func WideLine(label, value string) FieldLine {
	return FieldLine{Label: label, Value: value, Wide: true}
}

// Table builds a tabular block.
func Table(columns []string, rows [][]string) Block {
	return Block{Kind: BlockTable, Columns: columns, Rows: rows}
}

// Checklist builds a block of independent checkboxes.
func Checklist(title string, checks ...Checkbox) Block {
	return Block{Kind: BlockChecklist, Text: title, Checks: checks}
}

// Check is shorthand for a Checkbox.
func Check(label string, checked bool) Checkbox {
	return Checkbox{Label: label, Checked: checked}
}

// Signatures builds a signature row.
func Signatures(slots ...SignatureSlot) Block {
	return Block{Kind: BlockSignatures, Signatures: slots}
}

// NotImplemented is the placeholder for template names the registry does not
// know.
func NotImplemented(name string, mode Mode) Document {
	return Document{
		Template:    name,
		Title:       "Template Not Implemented",
		Subtitle:    name,
		Mode:        mode,
		Placeholder: true,
		Blocks: []Block{
			Paragraph("No layout is available for this document type yet."),
		},
	}
}
