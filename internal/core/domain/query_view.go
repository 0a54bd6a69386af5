package domain

// Node kinds used in NodeView.
const (
	NodeKindQuery    = "query"
	NodeKindGroup    = "group"
	NodeKindNegative = "negative"
	NodeKindTerm     = "term"
)

// NodeView is a serialisable mirror of a query tree.
// The tree types themselves are sealed interfaces, which encoders cannot
// round-trip, so commands that print trees go through this view.
type NodeView struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Text     string     `json:"text,omitempty" yaml:"text,omitempty"`
	Children []NodeView `json:"children,omitempty" yaml:"children,omitempty"`
}

// Explanation describes every stage of one transform.
type Explanation struct {
	Input    string   `json:"input" yaml:"input"`
	Parsed   NodeView `json:"parsed" yaml:"parsed"`
	Expanded NodeView `json:"expanded" yaml:"expanded"`
	Output   string   `json:"output" yaml:"output"`
}

// TransformResult is the outcome of one input in a batch transform.
type TransformResult struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Err    error  `json:"-"`
}

// ViewQuery builds the NodeView of a query.
func ViewQuery(q Query) NodeView {
	return NodeView{Kind: NodeKindQuery, Children: viewSimples(q.Members)}
}

func viewSimples(members []Simple) []NodeView {
	out := make([]NodeView, 0, len(members))
	for _, m := range members {
		out = append(out, viewSimple(m))
	}
	return out
}

func viewSimple(s Simple) NodeView {
	switch n := s.(type) {
	case Term:
		return NodeView{Kind: NodeKindTerm, Text: n.Text}
	case Group:
		return NodeView{Kind: NodeKindGroup, Children: viewSimples(n.Members)}
	case Negative:
		var inner NodeView
		switch in := n.Inner.(type) {
		case Term:
			inner = NodeView{Kind: NodeKindTerm, Text: in.Text}
		case Group:
			inner = NodeView{Kind: NodeKindGroup, Children: viewSimples(in.Members)}
		default:
			panic("domain: unknown negatable node")
		}
		return NodeView{Kind: NodeKindNegative, Children: []NodeView{inner}}
	default:
		panic("domain: unknown simple node")
	}
}
