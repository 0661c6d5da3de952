package puzzle

import (
	"github.com/wordgrid/crossgen/internal/models"
	"github.com/wordgrid/crossgen/pkg/grid"
	"github.com/wordgrid/crossgen/pkg/numberer"
)

// ToModelsPuzzle converts a pkg/puzzle.Puzzle to models.Puzzle for output formatting
func ToModelsPuzzle(p *Puzzle) *models.Puzzle {
	gridCells := make([][]models.GridCell, p.Grid.Size)
	for y := 0; y < p.Grid.Size; y++ {
		gridCells[y] = make([]models.GridCell, p.Grid.Size)
		for x := 0; x < p.Grid.Size; x++ {
			cell := p.Grid.Cells[y][x]

			var letter *string
			if !cell.IsBlack {
				letterStr := string(cell.Letter)
				letter = &letterStr
			}

			var number *int
			if cell.Number > 0 {
				num := cell.Number
				number = &num
			}

			gridCells[y][x] = models.GridCell{Letter: letter, Number: number}
		}
	}

	positions := make(map[int]*grid.Entry, len(p.Grid.Entries))
	for _, entry := range p.Grid.Entries {
		positions[entry.Number*2+int(entry.Direction)] = entry
	}

	acrossClues := make([]models.Clue, len(p.Numbering.Across))
	for i, clue := range p.Numbering.Across {
		acrossClues[i] = toModelsClue(clue, positions[clue.Number*2+int(grid.ACROSS)], "across")
	}

	downClues := make([]models.Clue, len(p.Numbering.Down))
	for i, clue := range p.Numbering.Down {
		downClues[i] = toModelsClue(clue, positions[clue.Number*2+int(grid.DOWN)], "down")
	}

	difficulty := toModelsDifficulty(p.Metadata.Difficulty)

	return &models.Puzzle{
		ID:          p.Metadata.ID,
		Title:       p.Metadata.Title,
		Author:      p.Metadata.Author,
		Difficulty:  difficulty,
		GridWidth:   p.Grid.Size,
		GridHeight:  p.Grid.Size,
		Grid:        gridCells,
		CluesAcross: acrossClues,
		CluesDown:   downClues,
		Seed:        p.Metadata.Seed,
		CreatedAt:   p.Metadata.CreatedAt,
	}
}

// toModelsClue pairs a numberer.Clue (number, resolved text, answer)
// with the grid entry that shares its number and direction, for the
// position and length fields the output formats need.
func toModelsClue(clue numberer.Clue, entry *grid.Entry, direction string) models.Clue {
	out := models.Clue{
		Number:    clue.Number,
		Text:      clue.Text,
		Answer:    clue.Answer,
		Direction: direction,
	}
	if entry != nil {
		out.PositionX = entry.StartCol
		out.PositionY = entry.StartRow
		out.Length = entry.Length
	}
	return out
}

func toModelsDifficulty(d grid.Difficulty) models.Difficulty {
	switch d {
	case grid.Easy:
		return models.DifficultyEasy
	case grid.Medium:
		return models.DifficultyMedium
	case grid.Hard:
		return models.DifficultyHard
	case grid.Expert:
		return models.DifficultyExpert
	default:
		return models.DifficultyMedium
	}
}
