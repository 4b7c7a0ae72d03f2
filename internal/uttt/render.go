package uttt

import "strings"

const (
	emptySymbol  = "."
	metaRowBreak = "---------+---------+---------\n"
)

// String draws the global board as text, one local board per 3x3 block.
func (s State) String() string {
	var sb strings.Builder

	for metaRow := 0; metaRow < 3; metaRow++ {
		for cellRow := 0; cellRow < 3; cellRow++ {
			for metaCol := 0; metaCol < 3; metaCol++ {
				cells := s.Boards[metaRow*3+metaCol].Cells
				for cellCol := 0; cellCol < 3; cellCol++ {
					sb.WriteByte(' ')
					sb.WriteString(symbol(cells[cellRow*3+cellCol]))
					sb.WriteByte(' ')
				}

				if metaCol < 2 {
					sb.WriteByte('|')
				}
			}
			sb.WriteByte('\n')
		}

		if metaRow < 2 {
			sb.WriteString(metaRowBreak)
		}
	}

	return sb.String()
}

func symbol(m Mark) string {
	if m == Empty {
		return emptySymbol
	}
	return m.String()
}
