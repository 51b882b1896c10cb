// Command build reads "key value" lines, sets them in a tree map in
// the order given, and prints the resulting tree.
//
// Lines are split at the first run of spaces or tabs. Blank lines and
// lines starting with # are skipped.
//
// With --from-traversals, the input is instead two lines of keys
// separated by spaces: the pre-order traversal of a tree, then its
// in-order traversal. Each key becomes its own value.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"go.lepak.sg/simplemap/tree"
	"go.lepak.sg/simplemap/tree/binary"
)

type cli struct {
	File    string   `short:"f" type:"existingfile" help:"Read pairs from this file instead of stdin"`
	Numeric bool     `short:"n" help:"Parse keys as integers and order them numerically (default orders keys as text)"`
	Remove  []string `short:"r" help:"Keys to remove after loading"`
	Format  string   `default:"dump" enum:"dump,tree,pairs" help:"Output format (dump, tree, pairs)"`

	FromTraversals bool `short:"t" help:"Read a pre-order line and an in-order line of keys instead of pairs"`
}

func main() {
	var params cli
	kong.Parse(&params, kong.Description("Build a binary search tree from key value lines."))

	in := io.Reader(os.Stdin)
	if params.File != "" {
		f, err := os.Open(params.File)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	var err error
	if params.Numeric {
		err = run[int](tree.Ordered[int], strconv.Atoi, in, params)
	} else {
		err = run[string](tree.Textual[string], func(s string) (string, error) { return s, nil }, in, params)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run[K any](cmp tree.Comparator[K], parse func(string) (K, error), in io.Reader, params cli) error {
	load := loadPairs[K]
	if params.FromTraversals {
		load = loadTraversals[K]
	}

	m, err := load(cmp, parse, in)
	if err != nil {
		return err
	}

	for _, raw := range params.Remove {
		k, err := parse(raw)
		if err != nil {
			return fmt.Errorf("remove %q: %w", raw, err)
		}

		if _, ok, err := m.Remove(k); err != nil {
			return fmt.Errorf("remove %q: %w", raw, err)
		} else if !ok {
			log.Printf("remove %q: not in the tree", raw)
		}
	}

	switch params.Format {
	case "tree":
		fmt.Print(m.String())
		return nil
	case "pairs":
		if m.Len() == 0 {
			return nil
		}
		err := m.ForEach(func(k K, v string) {
			fmt.Printf("%v %s\n", k, v)
		})
		if err != nil {
			return fmt.Errorf("printing pairs: %w", err)
		}
		return nil
	default:
		return m.Dump(os.Stdout)
	}
}

func loadPairs[K any](cmp tree.Comparator[K], parse func(string) (K, error), in io.Reader) (*binary.Map[K, string], error) {
	m := binary.New[K, string](cmp)

	sc := bufio.NewScanner(in)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		rawKey, value := text, ""
		if i := strings.IndexAny(text, " \t"); i >= 0 {
			rawKey, value = text[:i], strings.TrimSpace(text[i+1:])
		}

		k, err := parse(rawKey)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if _, _, err := m.Set(k, value); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return m, nil
}

func loadTraversals[K any](cmp tree.Comparator[K], parse func(string) (K, error), in io.Reader) (*binary.Map[K, string], error) {
	var lines [][]K

	sc := bufio.NewScanner(in)
	for sc.Scan() && len(lines) < 2 {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var keys []K
		for _, raw := range strings.Fields(text) {
			k, err := parse(raw)
			if err != nil {
				return nil, fmt.Errorf("traversal %d: %w", len(lines)+1, err)
			}
			keys = append(keys, k)
		}
		lines = append(lines, keys)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	if len(lines) != 2 {
		return nil, fmt.Errorf("expected a pre-order and an in-order line, got %d lines", len(lines))
	}

	m, err := binary.BuildFromTraversals[K, string](cmp, lines[0], lines[1], func(k K) string {
		return fmt.Sprint(k)
	})
	if err != nil {
		return nil, fmt.Errorf("building from traversals: %w", err)
	}

	return m, nil
}
