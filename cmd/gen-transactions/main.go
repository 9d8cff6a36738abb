// Command gen-transactions emits a synthetic CSV transaction stream for
// exercising payments-engine at scale: the CSV-emitting analogue of an HTTP
// load simulator, except the output is a file a real run can consume
// directly instead of requests against a live server.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"

	"github.com/urfave/cli/v2"
)

// generator produces a deterministic sequence of rows, favoring deposits so
// that later withdrawals and dispute events usually have something to act
// on.
type generator struct {
	rng          *rand.Rand
	clients      int
	nextTx       uint32
	openDeposits []uint32
	depositOwner map[uint32]int
}

func newGenerator(seed int64, clients int) *generator {
	return &generator{
		rng:          rand.New(rand.NewSource(seed)),
		clients:      clients,
		nextTx:       1,
		depositOwner: map[uint32]int{},
	}
}

func (g *generator) client() int {
	return g.rng.Intn(g.clients) + 1
}

func (g *generator) amount() string {
	cents := g.rng.Intn(100_000) + 1
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func (g *generator) row(w *bufio.Writer) {
	tx := g.nextTx
	g.nextTx++

	switch {
	case len(g.openDeposits) == 0 || g.rng.Intn(10) < 7:
		client := g.client()
		fmt.Fprintf(w, "deposit,%d,%d,%s\n", client, tx, g.amount())
		g.openDeposits = append(g.openDeposits, tx)
		g.depositOwner[tx] = client
	case g.rng.Intn(10) < 8:
		fmt.Fprintf(w, "withdrawal,%d,%d,%s\n", g.client(), tx, g.amount())
	default:
		pick := g.openDeposits[g.rng.Intn(len(g.openDeposits))]
		owner := g.depositOwner[pick]
		switch g.rng.Intn(3) {
		case 0:
			fmt.Fprintf(w, "dispute,%d,%d,\n", owner, pick)
		case 1:
			fmt.Fprintf(w, "resolve,%d,%d,\n", owner, pick)
		default:
			fmt.Fprintf(w, "chargeback,%d,%d,\n", owner, pick)
		}
	}
}

func main() {
	app := &cli.App{
		Name:  "gen-transactions",
		Usage: "emit a synthetic CSV transaction stream for exercising payments-engine",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "rows", Value: 1000, Usage: "number of data rows to emit"},
			&cli.IntFlag{Name: "clients", Value: 50, Usage: "distinct client ids to spread rows across"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "deterministic RNG seed"},
		},
		Action: func(c *cli.Context) error {
			g := newGenerator(c.Int64("seed"), c.Int("clients"))

			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()

			fmt.Fprintln(w, "type,client,tx,amount")
			for i := 0; i < c.Int("rows"); i++ {
				g.row(w)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
