// Package stdio is the one concrete Oracle implementation the core permits
// naming: a thin stdin/stdout collaborator, trivially rewritable, adapted
// from BigInteger28-Azen's pkg/io/reader.go Reader and reduced to exactly
// the three methods engine.Oracle declares. The menu system, help text, and
// screen-formatting helpers that surrounded the teacher's Reader are the
// out-of-scope terminal UI named in spec.md §1 and are not reproduced here.
package stdio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/azen-engine/internal/cards"
	"github.com/azen-engine/internal/durak"
)

// Oracle reads oracle responses from stdin and writes prompts to stdout.
type Oracle struct {
	scanner *bufio.Scanner
}

// New returns an Oracle reading from os.Stdin.
func New() *Oracle {
	return &Oracle{scanner: bufio.NewScanner(os.Stdin)}
}

func (o *Oracle) readLine(prompt string) string {
	fmt.Print(prompt)
	if o.scanner.Scan() {
		return strings.TrimSpace(o.scanner.Text())
	}
	return ""
}

// InputCard implements durak.BottomCardSource and engine.Oracle: prompts
// for a card notation and re-prompts until it parses to one of possible.
func (o *Oracle) InputCard(possible []cards.Card) (cards.Card, error) {
	allowed := make(map[cards.Card]struct{}, len(possible))
	for _, c := range possible {
		allowed[c] = struct{}{}
	}
	for {
		s := o.readLine("card (e.g. 6c, Xh, As): ")
		c, err := cards.ParseCard(s)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[c]; !ok {
				fmt.Println("that card is not a legal identity here, try again")
				continue
			}
		}
		return c, nil
	}
}

// ChooseAction implements engine.Oracle: prints the legal actions and
// display state, then reads a 1-based index, re-prompting on invalid input.
func (o *Oracle) ChooseAction(legal []durak.Action, displayState string) (int, error) {
	fmt.Println(displayState)
	for i, a := range legal {
		fmt.Printf("  %d. %s\n", i+1, a)
	}
	for {
		s := o.readLine("choose: ")
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > len(legal) {
			fmt.Println("enter a number from the list above")
			continue
		}
		return n - 1, nil
	}
}

// Confirm implements engine.Oracle: a yes/no prompt.
func (o *Oracle) Confirm(text string) (bool, error) {
	fmt.Println(text)
	s := strings.ToLower(o.readLine("confirm? (y/n): "))
	return s == "y" || s == "yes", nil
}
