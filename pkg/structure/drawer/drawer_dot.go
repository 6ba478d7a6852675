package drawer

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint
)

const maxRGB = 240

type rgb struct {
	r, g, b uint8
}

var palette = map[NodeKind]rgb{
	RootNode:     {r: 211, g: 211, b: 211},
	MemberNode:   {r: 255, g: 250, b: 205},
	MetaNode:     {r: 221, g: 160, b: 221},
	PlainNode:    {r: 173, g: 216, b: 230},
	VotingNode:   {r: 255, g: 165, b: 0},
	StackingNode: {r: 144, g: 238, b: 144},
}

var shapes = map[NodeKind]string{
	RootNode:     "doublecircle",
	MemberNode:   "folder",
	MetaNode:     "note",
	PlainNode:    "box",
	VotingNode:   "hexagon",
	StackingNode: "hexagon",
}

// DOTDrawer is a drawer that writes the model structure as a Graphviz DOT graph.
type DOTDrawer struct {
	graph   graph.Graph[string, string]
	out     io.Writer
	options []func(*description)
}

// NewDOTDrawer creates a new DOT drawer writing to out.
func NewDOTDrawer(out io.Writer, options ...func(*description)) *DOTDrawer {
	return &DOTDrawer{
		graph:   graph.New(graph.StringHash, graph.Directed(), graph.Acyclic(), graph.PreventCycles()),
		out:     out,
		options: options,
	}
}

func hexColor(c rgb) (string, error) {
	color, err := colors.RGB(c.r, c.g, c.b) //nolint
	if err != nil {
		return "", errors.Wrap(err, "unable to get colour")
	}

	return color.ToHEX().String(), nil
}

// AddNode adds a node to the structure graph. Node IDs must be unique.
func (d *DOTDrawer) AddNode(node Node) error {
	fill, err := hexColor(palette[node.Kind])
	if err != nil {
		return err
	}

	options := []func(*graph.VertexProperties){
		graph.VertexAttribute("label", node.Label),
		graph.VertexAttribute("shape", shapes[node.Kind]),
		graph.VertexAttribute("style", "filled"),
		graph.VertexAttribute("fillcolor", fill),
	}
	if node.Detail != "" {
		options = append(options, graph.VertexAttribute("xlabel", node.Detail))
	}

	err = d.graph.AddVertex(node.ID, options...)
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrapf(ErrDuplicateNode, "node %s", node.ID)
	}

	if err != nil {
		return errors.Wrapf(err, "unable to add vertex %s", node.ID)
	}

	return nil
}

// AddLink adds a link between two nodes. Voting members are shaded from blue to red by share.
func (d *DOTDrawer) AddLink(link Link) error {
	options := []func(*graph.EdgeProperties){}
	if link.Label != "" {
		options = append(options, graph.EdgeAttribute("label", link.Label))
	}

	if link.Dashed {
		options = append(options, graph.EdgeAttribute("style", "dashed"))
	}

	if link.Weighted {
		red := uint8(maxRGB * link.Share)
		color, err := hexColor(rgb{r: red, b: maxRGB - red})
		if err != nil {
			return err
		}

		options = append(options,
			graph.EdgeAttribute("color", color),
			graph.EdgeAttribute("fontcolor", "blue"),
		)
	}

	err := d.graph.AddEdge(link.From, link.To, options...)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", link.From, link.To)
	}

	return nil
}

// Draw writes the structure graph.
func (d *DOTDrawer) Draw() error {
	err := dot(d.graph, d.out, d.options...)
	if err != nil {
		return errors.Wrap(err, "unable to draw structure")
	}

	return nil
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
	{{range $k, $v := .Attributes}}
		{{$k}}="{{$v}}";
	{{end}}
	{{range $s := .Statements}}
		"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}} {{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}} weight={{.SourceWeight}} ]{{end}};
	{{end}}
	}
	`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

func dot(gra graph.Graph[string, string], wrt io.Writer, options ...func(*description)) error {
	desc, err := generateDOT(gra, options...)
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	return renderDOT(wrt, desc)
}

// GraphAttribute is a functional option setting a graph level attribute, e.g. rankdir.
func GraphAttribute(key, value string) func(*description) {
	return func(d *description) {
		d.Attributes[key] = value
	}
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func escape(value string) string {
	return dotEscaper.Replace(value)
}

func escapeAll(attributes map[string]string) map[string]string {
	escaped := make(map[string]string, len(attributes))
	for k, v := range attributes {
		escaped[k] = escape(v)
	}

	return escaped
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// generateDOT lists vertices and their edges in sorted order so the output is stable.
func generateDOT(gra graph.Graph[string, string], options ...func(*description)) (description, error) {
	desc := description{
		GraphType:    "graph",
		Attributes:   make(map[string]string),
		EdgeOperator: "--",
		Statements:   make([]statement, 0),
	}

	for _, option := range options {
		option(&desc)
	}

	if gra.Traits().IsDirected {
		desc.GraphType = "digraph"
		desc.EdgeOperator = "->"
	}

	adjacencyMap, err := gra.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	for _, vertex := range sortedKeys(adjacencyMap) {
		_, sourceProperties, err := gra.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		sourceAttributes := escapeAll(sourceProperties.Attributes)
		htmlAttributes := make(map[string]string)

		if xlabel, ok := sourceProperties.Attributes["xlabel"]; ok {
			htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`,
				html.EscapeString(sourceProperties.Attributes["label"]), html.EscapeString(xlabel))

			delete(sourceAttributes, "xlabel")
			delete(sourceAttributes, "label")
		}

		stmt := statement{
			Source:           escape(vertex),
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: sourceAttributes,
			HTMLAttributes:   htmlAttributes,
		}
		desc.Statements = append(desc.Statements, stmt)

		adjacencies := adjacencyMap[vertex]
		for _, adjacency := range sortedKeys(adjacencies) {
			edge := adjacencies[adjacency]
			stmt := statement{
				Source:         escape(vertex),
				Target:         escape(adjacency),
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: escapeAll(edge.Properties.Attributes),
			}
			desc.Statements = append(desc.Statements, stmt)
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
