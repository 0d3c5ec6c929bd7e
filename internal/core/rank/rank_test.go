package rank

import (
	"math/rand"
	"testing"
	"time"

	"velofact/internal/core/timerange"
)

func TestWithTies(t *testing.T) {
	cases := []struct {
		name  string
		value int
		pop   []int
		rank  int
		ties  int
	}{
		{"best with one tie", 5, []int{0, 5, 5, 3}, 0, 1},
		{"absent above all", 10, []int{0, 5, 5, 3}, 0, -1}, // no-match convention
		{"absent in the middle", 4, []int{0, 5, 5, 3}, 2, -1},
		{"worst", 0, []int{0, 5, 5, 3}, 3, 0},
		{"singleton", 7, []int{7}, 0, 0},
		{"empty population", 7, nil, 0, -1},
		{"all tied", 2, []int{2, 2, 2}, 0, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rank, ties := WithTies(c.value, c.pop)
			if rank != c.rank || ties != c.ties {
				t.Fatalf("WithTies(%d, %v) = (%d, %d), want (%d, %d)", c.value, c.pop, rank, ties, c.rank, c.ties)
			}
		})
	}
}

func TestWithTiesOrderInvariant(t *testing.T) {
	pop := []int{12, 4, 4, 9, 0, 4, 31, 9}
	wantRank, wantTies := WithTies(9, pop)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]int(nil), pop...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		rank, ties := WithTies(9, shuffled)
		if rank != wantRank || ties != wantTies {
			t.Fatalf("rank depends on population order: (%d,%d) vs (%d,%d)", rank, ties, wantRank, wantTies)
		}
	}
}

func TestWithTiesMatchesCountDefinition(t *testing.T) {
	// rank = number of strictly greater elements, ties = equal count - 1
	pop := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	for _, v := range []int{0, 1, 3, 5, 9, 10} {
		var greater, equal int
		for _, p := range pop {
			if p > v {
				greater++
			}
			if p == v {
				equal++
			}
		}
		rank, ties := WithTies(v, pop)
		if rank != greater || ties != equal-1 {
			t.Fatalf("WithTies(%d) = (%d,%d), want (%d,%d)", v, rank, ties, greater, equal-1)
		}
	}
}

func TestComparators(t *testing.T) {
	sep3 := timerange.MustDay(2019, time.September, 3)
	counts := map[timerange.Day]int{
		timerange.MustDay(2018, time.September, 5): 9,  // same month number, other year, other weekday
		timerange.MustDay(2019, time.August, 27):   11, // same weekday (Tuesday), same year
		timerange.MustDay(2018, time.August, 28):   13, // same weekday, other year
		timerange.MustDay(2019, time.September, 2): 5,
		sep3: 5,
	}

	if got := Population(counts, sep3, ShareYear); len(got) != 3 {
		t.Fatalf("ShareYear population = %v", got)
	}
	if got := Population(counts, sep3, ShareMonth); len(got) != 3 {
		t.Fatalf("ShareMonth spans years on month number, got %v", got)
	}
	if got := Population(counts, sep3, ShareWeekday(false)); len(got) != 3 {
		t.Fatalf("ShareWeekday(false) population = %v", got)
	}
	if got := Population(counts, sep3, ShareWeekday(true)); len(got) != 2 {
		t.Fatalf("ShareWeekday(true) population = %v", got)
	}

	rank, ties := DayWithTies(counts, sep3, ShareYear)
	if rank != 1 || ties != 1 {
		t.Fatalf("DayWithTies same-year = (%d,%d), want (1,1)", rank, ties)
	}
}
