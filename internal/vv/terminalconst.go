//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MINCONFIG = `
{"DataDir": "./data", "Source": "csv", "TopicLimit": 5, "TokenLimit": 5, "TextLimit": 5}
`

	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJMAIL = "Department of Classics, 125 Queen’s Park, Toronto, ON  M5S 2C7 Canada"
	PROJURL  = "https://github.com/e-gun/HipparchiaTopicRuns"

	SUMMARYTEMPLATE = `S1datasetS0: C3{{.runs}}C0 runs from C4{{.source}}C0
   C1topic-document rowsC0  C3{{.docs}}C0
   C1topic-term rowsC0      C3{{.terms}}C0
   C1topic countsC0         C3{{.counts}}C0
   C1run metricsC0          C3{{.metrics}}C0
   C1rows droppedC0         C5{{.dropped}}C0
`
)
