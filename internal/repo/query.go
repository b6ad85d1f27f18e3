package repo

import (
	"strconv"
	"strings"

	dom "productivity/internal/domain"

	"github.com/jackc/pgx/v5"
)

// Eq is an equality filter on one column.
type Eq struct {
	Column string
	Value  any
}

// Statement is a rendered SQL statement with its positional arguments.
type Statement struct {
	SQL  string
	Args []any
}

// Dialect renders ownership-scoped statements for one SQL backend.
// Encode converts a normalized value into the driver representation of
// its column kind.
type Dialect struct {
	Name        string
	Placeholder func(n int) string
	Encode      func(kind dom.Kind, v any) any
}

func quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

type builder struct {
	d    Dialect
	res  dom.Resource
	sb   strings.Builder
	args []any
}

func (b *builder) arg(column string, v any) string {
	if b.d.Encode != nil {
		v = b.d.Encode(b.res.KindOf(column), v)
	}
	b.args = append(b.args, v)
	return b.d.Placeholder(len(b.args))
}

// where writes the owner constraint followed by every extra filter.
// Filters on columns outside the table are skipped.
func (b *builder) where(owner string, filters []Eq) {
	b.sb.WriteString(" WHERE ")
	b.sb.WriteString(quote(dom.ColOwner))
	b.sb.WriteString(" = ")
	b.sb.WriteString(b.arg(dom.ColOwner, owner))
	for _, f := range filters {
		if !b.res.HasColumn(f.Column) || f.Column == dom.ColOwner {
			continue
		}
		b.sb.WriteString(" AND ")
		b.sb.WriteString(quote(f.Column))
		b.sb.WriteString(" = ")
		b.sb.WriteString(b.arg(f.Column, f.Value))
	}
}

func (b *builder) returning() {
	b.sb.WriteString(" RETURNING ")
	b.sb.WriteString(columnList(b.res.Columns()))
}

func (b *builder) statement() Statement {
	return Statement{SQL: b.sb.String(), Args: b.args}
}

func columnList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quote(c)
	}
	return strings.Join(quoted, ", ")
}

// SelectList renders a list of the owner's rows in the resource order.
func (d Dialect) SelectList(res dom.Resource, owner string, filters ...Eq) Statement {
	b := &builder{d: d, res: res}
	b.sb.WriteString("SELECT ")
	b.sb.WriteString(columnList(res.Columns()))
	b.sb.WriteString(" FROM ")
	b.sb.WriteString(quote(res.Table))
	b.where(owner, filters)
	b.sb.WriteString(" ORDER BY ")
	b.sb.WriteString(quote(res.OrderBy))
	if res.Desc {
		b.sb.WriteString(" DESC")
	}
	return b.statement()
}

// SelectOne renders a lookup of a single row by (id, owner).
func (d Dialect) SelectOne(res dom.Resource, owner, id string) Statement {
	b := &builder{d: d, res: res}
	b.sb.WriteString("SELECT ")
	b.sb.WriteString(columnList(res.Columns()))
	b.sb.WriteString(" FROM ")
	b.sb.WriteString(quote(res.Table))
	b.where(owner, []Eq{{Column: dom.ColID, Value: id}})
	return b.statement()
}

// Insert renders a single-row insert of rec. Only table columns are
// written, in table order.
func (d Dialect) Insert(res dom.Resource, rec dom.Record) Statement {
	b := &builder{d: d, res: res}
	var cols, vals []string
	for _, c := range res.Columns() {
		v, ok := rec[c]
		if !ok {
			continue
		}
		cols = append(cols, quote(c))
		vals = append(vals, b.arg(c, v))
	}
	b.sb.WriteString("INSERT INTO ")
	b.sb.WriteString(quote(res.Table))
	b.sb.WriteString(" (")
	b.sb.WriteString(strings.Join(cols, ", "))
	b.sb.WriteString(") VALUES (")
	b.sb.WriteString(strings.Join(vals, ", "))
	b.sb.WriteString(")")
	b.returning()
	return b.statement()
}

// Update renders an update of the row matching (id, owner). The
// write-once columns are never part of the SET list.
func (d Dialect) Update(res dom.Resource, owner, id string, patch dom.Record) Statement {
	b := &builder{d: d, res: res}
	var sets []string
	for _, c := range res.Columns() {
		switch c {
		case dom.ColID, dom.ColOwner, dom.ColCreatedAt:
			continue
		}
		v, ok := patch[c]
		if !ok {
			continue
		}
		sets = append(sets, quote(c)+" = "+b.arg(c, v))
	}
	if len(sets) == 0 {
		sets = append(sets, quote(dom.ColUpdatedAt)+" = "+quote(dom.ColUpdatedAt))
	}
	b.sb.WriteString("UPDATE ")
	b.sb.WriteString(quote(res.Table))
	b.sb.WriteString(" SET ")
	b.sb.WriteString(strings.Join(sets, ", "))
	b.where(owner, []Eq{{Column: dom.ColID, Value: id}})
	b.returning()
	return b.statement()
}

// Delete renders removal of the row matching (id, owner), returning its id.
func (d Dialect) Delete(res dom.Resource, owner, id string) Statement {
	b := &builder{d: d, res: res}
	b.sb.WriteString("DELETE FROM ")
	b.sb.WriteString(quote(res.Table))
	b.where(owner, []Eq{{Column: dom.ColID, Value: id}})
	b.sb.WriteString(" RETURNING ")
	b.sb.WriteString(quote(dom.ColID))
	return b.statement()
}

func dollar(n int) string   { return "$" + strconv.Itoa(n) }
func question(int) string { return "?" }
