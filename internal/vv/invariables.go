//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

var (
	LaunchTime = time.Now()

	// Palette is the ten colour categorical scheme; topics are coloured by rank % len(Palette)
	Palette = []string{
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	}

	// NeutralColor paints topics outside the active set
	NeutralColor = "#d9d9d9"
)
