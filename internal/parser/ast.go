package parser

// NodeKind identifies one of the fixed syntax tree node kinds
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindCodeBlock
	KindOperator
	KindText
	KindLink
)

func (k NodeKind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindCodeBlock:
		return "code_block"
	case KindOperator:
		return "operator"
	case KindText:
		return "text"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Node is implemented by every syntax tree node. The unexported marker
// method keeps the set of node kinds closed to this package.
type Node interface {
	Kind() NodeKind
	node()
}

// ============================================================================
// Nodes
// ============================================================================

// Document holds the code blocks and links of one markdown source, in source order
type Document struct {
	blocks []*CodeBlock
	links  []*Link
}

// NewDocument creates a document from already built nodes
func NewDocument(blocks []*CodeBlock, links []*Link) *Document {
	return &Document{blocks: blocks, links: links}
}

// AddBlock appends a code block
func (d *Document) AddBlock(b *CodeBlock) {
	d.blocks = append(d.blocks, b)
}

// AddLink appends a link
func (d *Document) AddLink(l *Link) {
	d.links = append(d.links, l)
}

// Blocks returns the code blocks in source order
func (d *Document) Blocks() []*CodeBlock { return d.blocks }

// Links returns the links in source order
func (d *Document) Links() []*Link { return d.links }

// Count returns the number of code blocks
func (d *Document) Count() int { return len(d.blocks) }

// Kind returns KindDocument
func (d *Document) Kind() NodeKind { return KindDocument }

func (d *Document) node() {}

// CodeBlock is a fenced block carrying a tangle directive
type CodeBlock struct {
	Info     *Text
	Content  *Text
	Operator *Operator
}

// Kind returns KindCodeBlock
func (c *CodeBlock) Kind() NodeKind { return KindCodeBlock }

func (c *CodeBlock) node() {}

// Operator binds a block to its destination
type Operator struct {
	Symbol  Symbol
	Operand *Text
}

// Kind returns KindOperator
func (o *Operator) Kind() NodeKind { return KindOperator }

func (o *Operator) node() {}

// Text wraps an immutable string payload
type Text struct {
	value string
}

// NewText wraps s in a text node
func NewText(s string) *Text {
	return &Text{value: s}
}

// Value returns the wrapped string
func (t *Text) Value() string { return t.value }

// Kind returns KindText
func (t *Text) Kind() NodeKind { return KindText }

func (t *Text) node() {}

// Link is an inline markdown link: [Text](Path)
type Link struct {
	Text *Text
	Path *Text
}

// Kind returns KindLink
func (l *Link) Kind() NodeKind { return KindLink }

func (l *Link) node() {}
