package datastructure

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/campusnav/pkg/util"
)

var ErrMalformedGraphFile = errors.New("malformed graph file")

// WriteGraph. write a bzip2 compressed snapshot of the graph to filename.
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return g.WriteGraphTo(f)
}

/*
WriteGraphTo. snapshot format (before bzip2 compression):

	<number of nodes> <number of directed edges>
	"<node name>"                      one line per node, lexicographic order
	"<from>" "<to>" <weight meter>     one line per directed edge

names are go-quoted so they may contain spaces.
*/
func (g *Graph) WriteGraphTo(out io.Writer) error {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", g.NumberOfVertices(), g.NumberOfEdges())

	for _, name := range g.nodes {
		fmt.Fprintf(w, "%s\n", strconv.Quote(name))
	}

	g.ForEdges(func(from, to string, weight float64) {
		weightF := strconv.FormatFloat(weight, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s %s\n", strconv.Quote(from), strconv.Quote(to), weightF)
	})

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return ReadGraphFrom(f)
}

func ReadGraphFrom(in io.Reader) (*Graph, error) {
	bz, err := bzip2.NewReader(in, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, err
	}

	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("%w: header %q", ErrMalformedGraphFile, line)
	}

	numVertices, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGraphFile, err)
	}
	numEdges, err := strconv.Atoi(tokens[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedGraphFile, err)
	}

	if numVertices < 0 || numEdges < 0 {
		return nil, fmt.Errorf("%w: negative count in header %q", ErrMalformedGraphFile, line)
	}

	nodes := make([]string, 0, numVertices)
	for i := 0; i < numVertices; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("%w: node %d: %v", ErrMalformedGraphFile, i, err)
		}
		name, _, err := readQuoted(line)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, name)
	}

	adjacency := make(map[string]map[string]float64, numVertices)
	for i := 0; i < numEdges; i++ {
		line, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("%w: edge %d: %v", ErrMalformedGraphFile, i, err)
		}
		from, to, weight, err := parseEdge(line)
		if err != nil {
			return nil, err
		}
		if _, ok := adjacency[from]; !ok {
			adjacency[from] = make(map[string]float64)
		}
		if _, dup := adjacency[from][to]; dup {
			return nil, fmt.Errorf("%w: duplicate edge %q -> %q", ErrMalformedGraphFile, from, to)
		}
		adjacency[from][to] = weight
	}
	if _, err := util.ReadLine(br); err != io.EOF {
		return nil, fmt.Errorf("%w: more than %d edges", ErrMalformedGraphFile, numEdges)
	}

	g := NewGraph(nodes, adjacency)
	// duplicate node lines, self-loops and edge endpoints missing from the node list change the counts
	if g.NumberOfVertices() != numVertices || g.NumberOfEdges() != numEdges {
		return nil, fmt.Errorf("%w: header says %d nodes and %d edges, got %d nodes and %d edges",
			ErrMalformedGraphFile, numVertices, numEdges, g.NumberOfVertices(), g.NumberOfEdges())
	}
	return g, nil
}

func parseEdge(line string) (string, string, float64, error) {
	from, rest, err := readQuoted(line)
	if err != nil {
		return "", "", 0, err
	}
	to, rest, err := readQuoted(rest)
	if err != nil {
		return "", "", 0, err
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w: weight in %q: %v", ErrMalformedGraphFile, line, err)
	}
	return from, to, weight, nil
}

// readQuoted. unquote the leading go-quoted string of s and return the remainder
func readQuoted(s string) (string, string, error) {
	s = strings.TrimLeft(s, " ")
	prefix, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrMalformedGraphFile, s, err)
	}
	name, err := strconv.Unquote(prefix)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q: %v", ErrMalformedGraphFile, s, err)
	}
	return name, s[len(prefix):], nil
}
