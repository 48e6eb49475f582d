package analysis

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

// Graph is a directed transaction graph with ether-denominated edge weights.
// Node and edge sets are small enough per analysis that adjacency maps cover
// everything the tracing code needs.
type Graph struct {
	nodes map[string]struct{}
	edges map[string]map[string]float64
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		edges: make(map[string]map[string]float64),
	}
}

// AddEdge accumulates transferred value between two addresses.
func (g *Graph) AddEdge(from, to string, value float64) {
	from = strings.ToLower(from)
	to = strings.ToLower(to)
	if from == "" || to == "" {
		return
	}

	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}

	if g.edges[from] == nil {
		g.edges[from] = make(map[string]float64)
	}
	g.edges[from][to] += value
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

func (g *Graph) EdgeCount() int {
	count := 0
	for _, out := range g.edges {
		count += len(out)
	}

	return count
}

// Successors returns outgoing neighbors of an address in deterministic order.
func (g *Graph) Successors(from string) []string {
	out := g.edges[strings.ToLower(from)]
	if len(out) == 0 {
		return nil
	}

	succ := make([]string, 0, len(out))
	for to := range out {
		succ = append(succ, to)
	}
	sort.Strings(succ)

	return succ
}

// EdgeWeight returns the accumulated value on an edge, zero when absent.
func (g *Graph) EdgeWeight(from, to string) float64 {
	return g.edges[strings.ToLower(from)][strings.ToLower(to)]
}

// HasNode reports whether the address appears in the graph.
func (g *Graph) HasNode(address string) bool {
	_, ok := g.nodes[strings.ToLower(address)]
	return ok
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdge struct {
	ID     int     `xml:"id,attr"`
	Source string  `xml:"source,attr"`
	Target string  `xml:"target,attr"`
	Weight float64 `xml:"weight,attr"`
}

type gexfDoc struct {
	XMLName xml.Name `xml:"gexf"`
	Xmlns   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`
	Graph   struct {
		EdgeType string     `xml:"defaultedgetype,attr"`
		Nodes    []gexfNode `xml:"nodes>node"`
		Edges    []gexfEdge `xml:"edges>edge"`
	} `xml:"graph"`
}

// GEXF renders the graph in the format Gephi imports.
func (g *Graph) GEXF() (string, error) {
	doc := gexfDoc{
		Xmlns:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
	}
	doc.Graph.EdgeType = "directed"

	nodes := make([]string, 0, len(g.nodes))
	for node := range g.nodes {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	for _, node := range nodes {
		label := node
		if info, ok := KnownEntity(node); ok {
			label = info.Name
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gexfNode{ID: node, Label: label})
	}

	edgeID := 0
	for _, from := range nodes {
		for _, to := range g.Successors(from) {
			doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
				ID:     edgeID,
				Source: from,
				Target: to,
				Weight: g.edges[from][to],
			})
			edgeID++
		}
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal gexf: %w", err)
	}

	return xml.Header + string(data), nil
}
