package palette

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
	"github.com/emirpasic/gods/utils"
	"github.com/hashicorp/go-hclog"
)

// byVolume orders boxes largest volume first, then by creation order.
func byVolume(a, b any) int {
	x := a.(*vbox)
	y := b.(*vbox)
	if vx, vy := x.volume(), y.volume(); vx != vy {
		return utils.IntComparator(vy, vx)
	}
	return utils.IntComparator(x.seq, y.seq)
}

// quantize reduces a histogram to at most maxColours swatches. When the
// histogram already has few enough colours each becomes its own swatch.
func quantize(hist Histogram, maxColours int, logger hclog.Logger) ([]*Swatch, error) {
	colours := hist.Colours()
	if len(colours) == 0 {
		return nil, nil
	}

	if len(colours) <= maxColours {
		logger.Debug("skipping median cut", "distinct", len(colours), "max", maxColours)
		swatches := make([]*Swatch, len(colours))
		for i, c := range colours {
			swatches[i] = NewSwatch(hist.RGB(c), hist.Count(c))
		}
		return swatches, nil
	}

	boxes, err := splitBoxes(colours, hist, maxColours)
	if err != nil {
		return nil, err
	}
	logger.Debug("median cut complete", "distinct", len(colours), "boxes", len(boxes))

	swatches := make([]*Swatch, 0, len(boxes))
	for _, b := range boxes {
		s, err := b.averageColour()
		if err != nil {
			return nil, err
		}
		swatches = append(swatches, s)
	}
	return swatches, nil
}

// splitBoxes repeatedly splits the largest box until there are maxBoxes boxes
// or the largest box holds a single colour. Boxes are returned largest first.
func splitBoxes(colours []uint32, hist Histogram, maxBoxes int) ([]*vbox, error) {
	seq := 0
	queue := priorityqueue.NewWith(byVolume)
	queue.Enqueue(newVBox(colours, hist, 0, len(colours)-1, seq))

	for queue.Size() < maxBoxes {
		v, ok := queue.Dequeue()
		if !ok {
			break
		}
		box := v.(*vbox)

		// Volume order means no smaller box can be split either.
		if !box.canSplit() {
			queue.Enqueue(box)
			break
		}

		seq++
		upper, err := box.split(seq)
		if err != nil {
			return nil, err
		}
		queue.Enqueue(upper)
		queue.Enqueue(box)
	}

	boxes := make([]*vbox, 0, queue.Size())
	for {
		v, ok := queue.Dequeue()
		if !ok {
			break
		}
		boxes = append(boxes, v.(*vbox))
	}
	return boxes, nil
}
