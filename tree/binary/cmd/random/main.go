// Command random builds a tree map from a random insert order
// and prints its traversals, shape and height.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"go.lepak.sg/simplemap/tree/binary"
)

type cli struct {
	Seed     int64         `short:"s" help:"Seed (default current unix time in ns)"`
	Num      int           `short:"n" default:"10" help:"Number of pairs in the tree"`
	Balanced bool          `short:"b" help:"Keep building the tree until it is balanced"`
	Workers  int           `short:"w" default:"4" help:"Parallel attempts when building a balanced tree"`
	Timeout  time.Duration `default:"10s" help:"Give up on building a balanced tree after this long"`
	Dump     bool          `short:"d" help:"Print the indented dump instead of the tree drawing"`
}

func main() {
	var params cli
	kong.Parse(&params, kong.Description("Build a random binary search tree."))

	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}

	var m *binary.Map[int, int]
	attempts := 0

	if params.Balanced {
		ctx, cancel := context.WithTimeout(context.Background(), params.Timeout)
		defer cancel()

		var err error
		m, attempts, err = binary.BuildRandomBalanced(ctx, params.Num, params.Seed, params.Workers)
		if err != nil {
			log.Fatalf("building balanced tree: %v", err)
		}
	} else {
		m = binary.BuildRandom(params.Num, params.Seed)
	}

	preorder := make([]int, 0, params.Num)
	m.PreOrder(func(k, _ int) bool {
		preorder = append(preorder, k)
		return true
	})

	inorder := make([]int, 0, params.Num)
	for k := range m.InOrderCoroutine().Items() {
		inorder = append(inorder, k)
	}

	fmt.Println("seed:", params.Seed)
	fmt.Println("preorder:", preorder)
	fmt.Println("inorder:", inorder)

	fmt.Println("tree:")
	if params.Dump {
		if err := m.Dump(os.Stdout); err != nil {
			log.Fatalf("dumping tree: %v", err)
		}
	} else {
		fmt.Print(m.String())
	}

	actual, ideal := m.Height()
	fmt.Println("height:", actual, "ideal:", ideal)

	if params.Balanced {
		fmt.Println("attempts:", attempts)
	}
}
