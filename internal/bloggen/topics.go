// Copyright (c) 2026 Heritage Iron Restorations LLC <shop@heritageiron.example>
// All rights reserved. See LICENSE for details.

package bloggen

import "math/rand/v2"

// autoTopics is the rotation of popular tractor and machinery subjects
// the unattended batch generator draws from.
var autoTopics = []string{
	"John Deere Model A Tractor Restoration Guide",
	"Farmall Cub: The Perfect Small Farm Tractor",
	"Allis-Chalmers WD-45: History and Restoration",
	"Ford 8N Tractor: America's Favorite Utility Tractor",
	"Case IH Magnum Series: Power and Performance",
	"International Harvester Cub Cadet: Collector's Guide",
	"Massey Ferguson 35: The World's Best-Selling Tractor",
	"Oliver 77 Row Crop: A Green Machine Classic",
	"Minneapolis-Moline U: The Unique Prairie Tractor",
	"Farmall M: Heavy-Duty Farming Power",
	"John Deere 4020: The Legendary Workhorse",
	"Ford 9N: The Tractor That Changed Farming",
	"Allis-Chalmers B: The Small Tractor with Big Impact",
	"Case VAC: The Streamlined Farm Tractor",
	"International Harvester 560: The Troublesome Legend",
}

// maxBatchSize caps one batch run regardless of the requested count.
const maxBatchSize = 2

// pickTopics selects up to maxBatchSize distinct random topics.
func pickTopics(count int) []string {
	if count > maxBatchSize {
		count = maxBatchSize
	}
	if count < 0 {
		count = 0
	}

	var selected []string
	used := map[int]bool{}
	for len(selected) < count {
		i := rand.IntN(len(autoTopics))
		if used[i] {
			continue
		}
		used[i] = true
		selected = append(selected, autoTopics[i])
	}
	return selected
}
