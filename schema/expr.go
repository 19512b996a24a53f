package schema

// Op is a relational composition operator.
type Op int

const (
	// OpTable is a leaf expression naming a stored table.
	OpTable Op = iota

	// OpRestrict keeps the rows of Left matching Cond.
	OpRestrict

	// OpSubtract keeps the rows of Left not matching Cond.
	OpSubtract

	// OpJoin is the natural join of Left and Right.
	OpJoin

	// OpUnion is the union of Left and Right.
	OpUnion

	// OpProject keeps only the attributes in Attrs.
	OpProject
)

// Expr is an immutable relational expression over stored tables.
// Expressions only describe composition; executing them belongs to the
// provider side and is outside this layer. Two expressions built from
// the same operands compare deeply equal, which is what makes
// type-level and instance-level composition interchangeable.
type Expr struct {
	Op    Op
	Table TableRef // OpTable only
	Cond  Cond     // OpRestrict, OpSubtract
	Attrs []string // OpProject
	Left  *Expr
	Right *Expr
}

// TableExpr returns the leaf expression for a stored table.
func TableExpr(table TableRef) *Expr {
	return &Expr{Op: OpTable, Table: table}
}

// Restrict returns e restricted to rows matching cond.
func (e *Expr) Restrict(cond Cond) *Expr {
	return &Expr{Op: OpRestrict, Cond: cond, Left: e}
}

// Subtract returns e without the rows matching cond.
func (e *Expr) Subtract(cond Cond) *Expr {
	return &Expr{Op: OpSubtract, Cond: cond, Left: e}
}

// Join returns the natural join of e and other.
func (e *Expr) Join(other *Expr) *Expr {
	return &Expr{Op: OpJoin, Left: e, Right: other}
}

// UnionWith returns the union of e and other.
func (e *Expr) UnionWith(other *Expr) *Expr {
	return &Expr{Op: OpUnion, Left: e, Right: other}
}

// Project returns e reduced to the named attributes.
func (e *Expr) Project(attrs ...string) *Expr {
	kept := make([]string, len(attrs))
	copy(kept, attrs)
	return &Expr{Op: OpProject, Attrs: kept, Left: e}
}
