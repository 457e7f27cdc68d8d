package dice

import (
	"fmt"
	"sort"

	"github.com/To3Knee/RealmQuest_Go/internal/domain"
)

// Stat-block defaults and limits.
const (
	DefaultStatMethod = "4d6dl1"
	DefaultStatCount  = 6
	MaxStatCount      = 20
)

// Evaluate rolls every term of a parsed expression and returns the full
// breakdown. Term order is preserved exactly as written in the source
// notation. The returned detail's Total is the sum of all signed term
// subtotals plus Constants; modifier and bonus are reconciled separately.
func Evaluate(expr Expression, roller Roller) domain.ExpressionDetail {
	detail := domain.ExpressionDetail{
		Notation:     expr.Notation,
		Constants:    expr.Constants,
		IsPercentile: expr.IsPercentile,
		Terms:        make([]domain.DiceTerm, 0, len(expr.Terms)),
	}

	total := expr.Constants
	for _, term := range expr.Terms {
		rolls := make([]int, term.Count)
		for i := range rolls {
			rolls[i] = roller.Roll(term.Sides)
		}
		evaluated := evaluateTerm(term, rolls)
		total += evaluated.Subtotal
		detail.Terms = append(detail.Terms, evaluated)
	}
	detail.Total = total

	return detail
}

// evaluateTerm attaches rolls, kept, dropped and subtotal to a parsed term.
func evaluateTerm(term domain.DiceTerm, rolls []int) domain.DiceTerm {
	term.Rolls = rolls
	term.Kept, term.Dropped = applyKeepDrop(rolls, term.KeepDrop, term.KeepDropN)

	sum := 0
	for _, v := range term.Kept {
		sum += v
	}
	term.Subtotal = term.Sign * sum
	return term
}

// applyKeepDrop selects which rolls count toward the subtotal.
//
// Ties are broken by original position: rolls are ordered by
// (value, original index) ascending for lowest operations and by
// (value descending, original index ascending) for highest operations, so
// output is fully reproducible given reproducible rolls. Both kept and
// dropped are returned in original roll order.
func applyKeepDrop(rolls []int, kd domain.KeepDrop, n int) (kept, dropped []int) {
	if kd == "" {
		kept = append([]int(nil), rolls...)
		return kept, []int{}
	}

	idx := make([]int, len(rolls))
	for i := range idx {
		idx[i] = i
	}

	highest := kd == domain.KeepHighest || kd == domain.DropHighest
	sort.SliceStable(idx, func(a, b int) bool {
		ia, ib := idx[a], idx[b]
		if rolls[ia] != rolls[ib] {
			if highest {
				return rolls[ia] > rolls[ib]
			}
			return rolls[ia] < rolls[ib]
		}
		return ia < ib
	})

	selected := make(map[int]bool, n)
	for _, i := range idx[:n] {
		selected[i] = true
	}

	keepSelected := kd == domain.KeepHighest || kd == domain.KeepLowest
	kept = make([]int, 0, len(rolls))
	dropped = make([]int, 0, len(rolls))
	for i, v := range rolls {
		if selected[i] == keepSelected {
			kept = append(kept, v)
		} else {
			dropped = append(dropped, v)
		}
	}
	return kept, dropped
}

// NormalizeGroupRolls reconciles client-supplied roll values for a single
// dice group. Values are clamped into [1, sides] rather than rejected,
// truncated to count, and padded with fresh rolls when the client supplied
// fewer than count values. With no provided values it simply rolls the
// whole group.
func NormalizeGroupRolls(count, sides int, provided []int, roller Roller) []int {
	out := make([]int, 0, count)
	for _, v := range provided {
		if len(out) == count {
			break
		}
		if v < 1 {
			v = 1
		}
		if v > sides {
			v = sides
		}
		out = append(out, v)
	}
	for len(out) < count {
		out = append(out, roller.Roll(sides))
	}
	return out
}

// ReconcileModifier applies the legacy modifier-folding rule: when the
// caller supplied no separate modifier or bonus, constants embedded in the
// notation are folded into the modifier for display and Constants is
// reported as zero. When the caller did supply either, embedded constants
// stay reported separately so they are not double counted. The detail's
// Total is recomputed to stay consistent with its Constants field.
func ReconcileModifier(detail *domain.ExpressionDetail, modifier, bonus int) int {
	if modifier != 0 || bonus != 0 {
		return modifier
	}

	folded := detail.Constants
	detail.Constants = 0
	detail.Total -= folded
	return folded
}

// GrandTotal computes the authoritative total for an evaluated expression.
// Callers must use this value over anything client-supplied.
func GrandTotal(detail domain.ExpressionDetail, modifier, bonus int) int {
	return detail.Total + modifier + bonus
}

// StatBlockResult is the outcome of rolling one stat generation method
// several independent times.
type StatBlockResult struct {
	Method     string
	Stats      []domain.ExpressionDetail
	Totals     []int
	GrandTotal int
}

// EvaluateStatBlock evaluates the given method notation (default "4d6dl1")
// independently count times (default 6). Each run draws fresh rolls; no
// correlation between stats is introduced.
func EvaluateStatBlock(method string, count int, roller Roller) (StatBlockResult, error) {
	if method == "" {
		method = DefaultStatMethod
	}
	if count == 0 {
		count = DefaultStatCount
	}
	if count < 1 || count > MaxStatCount {
		return StatBlockResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidStatCount, count)
	}

	expr, err := ParseNotation(method)
	if err != nil {
		return StatBlockResult{}, err
	}
	if len(expr.Terms) == 0 {
		// A constants-only method carries no dice to roll.
		return StatBlockResult{}, fmt.Errorf("%w: method %q has no dice term", domain.ErrMissingSides, method)
	}

	result := StatBlockResult{
		Method: expr.Notation,
		Stats:  make([]domain.ExpressionDetail, 0, count),
		Totals: make([]int, 0, count),
	}
	for i := 0; i < count; i++ {
		detail := Evaluate(expr, roller)
		result.Stats = append(result.Stats, detail)
		result.Totals = append(result.Totals, detail.Total)
		result.GrandTotal += detail.Total
	}
	return result, nil
}
