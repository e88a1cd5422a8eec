package kernel

import "testing"

func TestBuildInitialFrame(t *testing.T) {
	const stackWords = 32
	stack := make(Stack, stackWords)
	const idx = 3

	sp := buildInitialFrame(stack, idx)

	if want := stackWords - 16; sp != want {
		t.Fatalf("sp = %d, want %d", sp, want)
	}
	if got := stack[stackWords-1]; got != thumbBit {
		t.Errorf("status register word = %#x, want thumbBit %#x", got, thumbBit)
	}
	if got := stack[stackWords-2]; got != uint32(idx) {
		t.Errorf("pc word = %d, want thread index %d", got, idx)
	}
	for i := 3; i <= 16; i++ {
		if got := stack[stackWords-i]; got != sentinelWord {
			t.Errorf("stack[len-%d] = %d, want sentinel %d", i, got, sentinelWord)
		}
	}
}
