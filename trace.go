package physac

import (
	"fmt"
	"io"
)

// WriteTrace writes the state of every body, one line each:
//
//	step(id): x y orient
func (w *World) WriteTrace(writer io.Writer, step int) error {
	for _, body := range w.bodies {
		_, err := fmt.Fprintf(writer, "%d(%d): %.6f %.6f %.6f\n",
			step, body.ID, body.Position.X(), body.Position.Y(), body.Orient)
		if err != nil {
			return fmt.Errorf("physac: write trace: %w", err)
		}
	}

	return nil
}
