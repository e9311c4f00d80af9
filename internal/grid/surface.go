package grid

import "github.com/abgdnv/productgrid/internal/product"

// NewRow is the row position of a row that has not been saved yet.
const NewRow = -1

// Form is what a surface shows inside an open row.
type Form struct {
	Draft  product.Draft        `json:"draft"`
	Errors []product.FieldError `json:"errors,omitempty"`
}

// Surface renders the row editor. It holds no state of its own that the editor relies on.
type Surface interface {
	PresentNewRow(form Form)
	PresentEditRow(row int, form Form)
	CloseRow(row int)
}

type CommandKind string

const (
	KindPresentNewRow  CommandKind = "presentNewRow"
	KindPresentEditRow CommandKind = "presentEditRow"
	KindCloseRow       CommandKind = "closeRow"
)

// Command is one instruction sent to a surface.
type Command struct {
	Kind CommandKind `json:"kind"`
	Row  int         `json:"row"`
	Form *Form       `json:"form,omitempty"`
}

// Recorder is a Surface that keeps the commands it receives, in order.
type Recorder struct {
	commands []Command
}

func (r *Recorder) PresentNewRow(form Form) {
	r.commands = append(r.commands, Command{Kind: KindPresentNewRow, Row: NewRow, Form: &form})
}

func (r *Recorder) PresentEditRow(row int, form Form) {
	r.commands = append(r.commands, Command{Kind: KindPresentEditRow, Row: row, Form: &form})
}

func (r *Recorder) CloseRow(row int) {
	r.commands = append(r.commands, Command{Kind: KindCloseRow, Row: row})
}

// Commands returns the recorded commands. Never nil.
func (r *Recorder) Commands() []Command {
	return append(make([]Command, 0, len(r.commands)), r.commands...)
}

type discard struct{}

func (discard) PresentNewRow(Form)       {}
func (discard) PresentEditRow(int, Form) {}
func (discard) CloseRow(int)             {}

// Discard ignores every command.
var Discard Surface = discard{}
