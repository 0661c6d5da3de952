package grid

import "testing"

func TestGenerate_ProducesValidTemplate(t *testing.T) {
	g, err := Generate(GeneratorConfig{
		GridConfig: GridConfig{Size: 15},
		Difficulty: Medium,
		Seed:       42,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if g.Size != 15 {
		t.Fatalf("Size = %d, want 15", g.Size)
	}
	if !isSymmetric(g) {
		t.Error("generated template should be 180-degree symmetric")
	}
	if !isConnected(g) {
		t.Error("generated template should have all white cells connected")
	}
	if hasShortWords(g) {
		t.Error("generated template should not have short words")
	}
	if len(g.Entries) == 0 {
		t.Error("generated template should have slots extracted")
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := GeneratorConfig{GridConfig: GridConfig{Size: 15}, Difficulty: Medium, Seed: 7}
	g1, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	g2, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for r := 0; r < g1.Size; r++ {
		for c := 0; c < g1.Size; c++ {
			if g1.Cells[r][c].IsBlack != g2.Cells[r][c].IsBlack {
				t.Fatalf("cell [%d][%d] differs between identically-seeded runs", r, c)
			}
		}
	}
}

func TestGenerate_DifficultyDensityOrdering(t *testing.T) {
	if getDifficultyDensity(Easy) >= getDifficultyDensity(Hard) {
		t.Error("Easy density should be lower than Hard density")
	}
	if getDifficultyDensity(Hard) >= getDifficultyDensity(Expert) {
		t.Error("Hard density should be lower than Expert density")
	}
}

func TestGenerate_AcceptsCanonicalSizes(t *testing.T) {
	for _, size := range []int{13, 15, 17, 21} {
		g, err := Generate(GeneratorConfig{GridConfig: GridConfig{Size: size}, Difficulty: Medium, Seed: int64(size)})
		if err != nil {
			t.Fatalf("Generate(size=%d) error = %v", size, err)
		}
		if g.Size != size {
			t.Errorf("Size = %d, want %d", g.Size, size)
		}
	}
}

func TestShortSlotNear_DetectsShortRun(t *testing.T) {
	g := NewEmptyGrid(GridConfig{Size: 5})
	g.Cells[0][2].IsBlack = true // splits row 0 into a 2-run and a 2-run
	if !shortSlotNear(g, 0, 0) {
		t.Error("expected short run to be detected in row 0")
	}
}
