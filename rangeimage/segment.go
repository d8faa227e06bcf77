package rangeimage

import "math"

// neighborOffset is one of the four BFS neighbor directions of spec §4.5.
type neighborOffset struct {
	dRow, dCol int
}

var neighborOffsets = [4]neighborOffset{
	{-1, 0},
	{0, 1},
	{0, -1},
	{1, 0},
}

// Segment implements spec §4.5: a row-major sweep launching a breadth-first
// cluster for every still-unlabeled cell, using a depth-ratio angular link
// predicate rather than Euclidean distance. Grounded on
// imageProjection.cpp's cloudSegmentation/labelComponents, adapted to reuse
// Image's preallocated BFS scratch buffers instead of labelComponents'
// function-local std::vector queue (spec §9: "fixed scratch buffers ... not
// a dynamic container").
func Segment(img *Image) {
	cfg := img.Cfg
	for r := 0; r < cfg.NScan; r++ {
		for c := 0; c < cfg.HorizonScan; c++ {
			if img.Label[img.Index(r, c)] == LabelUnset {
				labelComponent(img, r, c)
			}
		}
	}
}

// labelComponent runs one BFS cluster rooted at (rootRow, rootCol) and
// either commits it under a fresh cluster id or rejects it, marking every
// cell it touched with SentinelDrop (imageProjection.cpp, labelComponents).
func labelComponent(img *Image, rootRow, rootCol int) {
	cfg := img.Cfg

	for i := range img.lineFlag {
		img.lineFlag[i] = false
	}

	queueHead, queueTail := 0, 0
	pushedCount := 0

	img.queueRow[queueTail] = int32(rootRow)
	img.queueCol[queueTail] = int32(rootCol)
	queueTail++

	img.allPushedRow[pushedCount] = int32(rootRow)
	img.allPushedCol[pushedCount] = int32(rootCol)
	pushedCount++

	img.Label[img.Index(rootRow, rootCol)] = img.NextClusterID
	img.lineFlag[rootRow] = true

	for queueHead < queueTail {
		row := int(img.queueRow[queueHead])
		col := int(img.queueCol[queueHead])
		queueHead++

		uIdx := img.Index(row, col)

		for _, off := range neighborOffsets {
			nr := row + off.dRow
			if nr < 0 || nr >= cfg.NScan {
				continue
			}
			nc := col + off.dCol
			if nc < 0 {
				nc += cfg.HorizonScan
			} else if nc >= cfg.HorizonScan {
				nc -= cfg.HorizonScan
			}

			vIdx := img.Index(nr, nc)
			if img.Label[vIdx] != LabelUnset {
				continue
			}

			if !linkAccepted(img, uIdx, vIdx, off.dCol != 0) {
				continue
			}

			img.Label[vIdx] = img.NextClusterID
			img.lineFlag[nr] = true

			img.queueRow[queueTail] = int32(nr)
			img.queueCol[queueTail] = int32(nc)
			queueTail++

			img.allPushedRow[pushedCount] = int32(nr)
			img.allPushedCol[pushedCount] = int32(nc)
			pushedCount++
		}
	}

	if clusterAccepted(img, pushedCount) {
		img.NextClusterID++
		return
	}

	for i := 0; i < pushedCount; i++ {
		idx := img.Index(int(img.allPushedRow[i]), int(img.allPushedCol[i]))
		img.Label[idx] = SentinelDrop
	}
}

// linkAccepted evaluates the depth-ratio angular predicate of spec §4.5
// between cells u and v.
func linkAccepted(img *Image, uIdx, vIdx int, differsInColumn bool) bool {
	cfg := img.Cfg

	d1 := img.Range[uIdx]
	d2 := img.Range[vIdx]
	if d2 > d1 {
		d1, d2 = d2, d1
	}

	var alpha float64
	if differsInColumn {
		alpha = cfg.AngResXRad()
	} else {
		alpha = cfg.AngResYRad()
	}

	psi := math.Atan2(d2*math.Sin(alpha), d1-d2*math.Cos(alpha))
	return psi > cfg.SegmentTheta
}

// clusterAccepted applies spec §4.5's acceptance rule: unconditional accept
// at 30 cells or more, else a fallback on point count and beam span, to rescue
// thin vertical structures that touch few points but many beams.
func clusterAccepted(img *Image, pushedCount int) bool {
	if pushedCount >= 30 {
		return true
	}
	if pushedCount < img.Cfg.SegmentValidPointNum {
		return false
	}

	lineCount := 0
	for _, touched := range img.lineFlag {
		if touched {
			lineCount++
		}
	}
	return lineCount >= img.Cfg.SegmentValidLineNum
}
