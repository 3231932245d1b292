package board

import "fyne.io/fyne/v2"

// ringLayout draws objects[0] as a square ring centred in the cell and
// centres every other object inside it.
type ringLayout struct {
	pad float32
	min float32
}

func (layout *ringLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	ring := objects[0]
	ring.Move(fyne.NewPos((size.Width-side)/2, (size.Height-side)/2))
	ring.Resize(fyne.NewSquareSize(side))

	for _, object := range objects[1:] {
		objectSize := object.MinSize()
		if objectSize.Width > side {
			objectSize.Width = side
		}
		object.Move(fyne.NewPos((size.Width-objectSize.Width)/2, (size.Height-objectSize.Height)/2))
		object.Resize(objectSize)
	}
}

func (layout *ringLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	side := layout.min
	if len(objects) < 2 {
		return fyne.NewSquareSize(side)
	}
	for _, object := range objects[1:] {
		objectSize := object.MinSize()
		if objectSize.Width+layout.pad > side {
			side = objectSize.Width + layout.pad
		}
		if objectSize.Height+layout.pad > side {
			side = objectSize.Height + layout.pad
		}
	}
	return fyne.NewSquareSize(side)
}
