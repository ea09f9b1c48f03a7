package table_test

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/render/template/pongo"
	"github.com/goliatone/go-contactbook/pkg/table"
	"github.com/goliatone/go-contactbook/pkg/testsupport"
)

func contactColumns() []table.Column[model.Contact] {
	return []table.Column[model.Contact]{
		table.Accessor("firstName", "Name", func(c model.Contact) any { return c.FirstName }),
		table.Accessor("lastName", "Surname", func(c model.Contact) any { return c.LastName }),
		table.Accessor("email", "E-mail", func(c model.Contact) any { return c.Email }),
		table.Accessor("phoneNumber", "Phone", func(c model.Contact) any { return c.PhoneNumber }),
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()
	engine, err := pongo.New(pongo.WithFS(table.TemplatesFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestNew_ShapeMatchesDataAndColumns(t *testing.T) {
	data := []model.Contact{testsupport.Ada(), testsupport.Grace()}
	m := table.New(data, contactColumns())

	if len(m.HeaderGroups) != 1 || len(m.HeaderGroups[0].Headers) != 4 {
		t.Fatalf("expected one header group with 4 headers, got %+v", m.HeaderGroups)
	}
	if len(m.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m.Rows))
	}
	for _, row := range m.Rows {
		if len(row.Cells) != 4 {
			t.Fatalf("row %s: expected 4 cells, got %d", row.ID, len(row.Cells))
		}
	}
	if len(m.FooterGroups) != 1 || len(m.FooterGroups[0].Headers) != 4 {
		t.Fatalf("expected one footer group with 4 cells, got %+v", m.FooterGroups)
	}

	want := [][]string{
		{"Ada", "Lovelace", "ada@example.com", "123"},
		{"Grace", "Hopper", "grace@example.com", "456"},
	}
	if diff := cmp.Diff(want, m.CellTexts()); diff != "" {
		t.Fatalf("cell texts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Name", "Surname", "E-mail", "Phone"}, m.HeaderTexts()); diff != "" {
		t.Fatalf("header texts mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_EmptyData(t *testing.T) {
	m := table.New[model.Contact](nil, contactColumns())
	if !m.Empty() {
		t.Fatalf("expected empty model")
	}
	if len(m.HeaderTexts()) != 4 {
		t.Fatalf("headers must still be produced for empty data")
	}
}

func TestNew_PlaceholdersWhenNoHeaderOrFooter(t *testing.T) {
	columns := []table.Column[model.Contact]{
		{ID: "firstName", Accessor: func(c model.Contact) any { return c.FirstName }},
	}
	m := table.New([]model.Contact{testsupport.Ada()}, columns)

	header := m.HeaderGroups[0].Headers[0]
	if !header.Placeholder || header.Content != "" {
		t.Fatalf("expected placeholder header, got %+v", header)
	}
	footer := m.FooterGroups[0].Headers[0]
	if !footer.Placeholder || footer.Content != "" {
		t.Fatalf("expected placeholder footer, got %+v", footer)
	}
	if m.HasFooter() {
		t.Fatalf("placeholder footers must not count as footer content")
	}
}

func TestNew_CellRendererOverridesRawValue(t *testing.T) {
	columns := []table.Column[model.Contact]{
		{
			ID:       "email",
			Accessor: func(c model.Contact) any { return c.Email },
			Cell: func(ctx table.CellContext[model.Contact]) string {
				return "<" + ctx.Value().(string) + ">"
			},
		},
		{ID: "phone", Accessor: func(c model.Contact) any { return 42 }},
	}
	m := table.New([]model.Contact{testsupport.Ada()}, columns)

	cells := m.Rows[0].Cells
	if cells[0].Content != "<ada@example.com>" {
		t.Fatalf("expected cell renderer output, got %q", cells[0].Content)
	}
	if cells[0].Value != "ada@example.com" {
		t.Fatalf("expected raw value preserved, got %v", cells[0].Value)
	}
	if cells[1].Content != "42" {
		t.Fatalf("expected formatted raw value, got %q", cells[1].Content)
	}
}

func TestNew_FooterContent(t *testing.T) {
	columns := contactColumns()
	columns[0].Footer = func(ctx table.HeaderContext[model.Contact]) string {
		return "Total"
	}
	m := table.New([]model.Contact{testsupport.Ada()}, columns)
	if !m.HasFooter() {
		t.Fatalf("expected footer content")
	}
	if got := m.FooterGroups[0].Headers[0].Content; got != "Total" {
		t.Fatalf("expected footer Total, got %q", got)
	}
}

func TestHTML_RendersSingleContact(t *testing.T) {
	m := table.New([]model.Contact{testsupport.Ada()}, contactColumns())
	out, err := table.HTML(newEngine(t), m)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}

	for _, fragment := range []string{
		"<thead", "<tbody>", "<tfoot>",
		">Name</th>", ">Surname</th>", ">E-mail</th>", ">Phone</th>",
		">Ada</td>", ">Lovelace</td>", ">ada@example.com</td>", ">123</td>",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
	if got := strings.Count(out, "<td "); got != 4 {
		t.Fatalf("expected 4 body cells, got %d", got)
	}
}

func TestHTML_EscapesContent(t *testing.T) {
	contact := testsupport.Ada()
	contact.FirstName = "<script>alert(1)</script>"
	m := table.New([]model.Contact{contact}, contactColumns())

	out, err := table.HTML(newEngine(t), m)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected escaped cell content:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped entity in output:\n%s", out)
	}
}

type measurement struct {
	Score  float64
	Events chan int
}

func TestHTML_RawValuesOutsideJSON(t *testing.T) {
	columns := []table.Column[measurement]{
		table.Accessor("score", "Score", func(m measurement) any { return m.Score }),
		{
			ID:       "events",
			Header:   func(table.HeaderContext[measurement]) string { return "Events" },
			Accessor: func(m measurement) any { return m.Events },
			Cell:     func(table.CellContext[measurement]) string { return "chan" },
		},
	}
	m := table.New([]measurement{{Score: math.NaN(), Events: make(chan int)}}, columns)

	out, err := table.HTML(newEngine(t), m)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	for _, fragment := range []string{">NaN</td>", ">chan</td>"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func TestHTML_NilEngine(t *testing.T) {
	if _, err := table.HTML(nil, table.Model{}); err == nil {
		t.Fatalf("expected error for nil engine")
	}
}

func TestText_ContainsHeadersAndValues(t *testing.T) {
	m := table.New([]model.Contact{testsupport.Ada(), testsupport.Grace()}, contactColumns())
	out := table.Text(m, table.DefaultTextOptions())

	for _, fragment := range []string{"Name", "Surname", "E-mail", "Phone", "Ada", "Hopper", "grace@example.com", "456"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in text output:\n%s", fragment, out)
		}
	}
}

func TestText_AppendsFooterRow(t *testing.T) {
	columns := contactColumns()
	columns[3].Footer = func(ctx table.HeaderContext[model.Contact]) string {
		return "rows: 1"
	}
	m := table.New([]model.Contact{testsupport.Ada()}, columns)
	out := table.Text(m, table.DefaultTextOptions())
	if !strings.Contains(out, "rows: 1") {
		t.Fatalf("expected footer row in text output:\n%s", out)
	}
}
