//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Hipparchia Topic Runs"
	SHORTNAME = "HTR"
	VERSION   = "0.3.1"

	CONFIGLOCATION = "."
	CONFIGALTAPTH  = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "htr-conf.json"
	CONFIGNAME     = "htr-conf"
	ENVPREFIX      = "HTR"

	// the four source tables; CSV names first, then the table names used by sqlite and postgres
	CSVTOPICDOCS    = "topics-by-texts.csv"
	CSVTOPICDOCSALT = "topics-by-text.csv"
	CSVTOPICTERMS   = "words-by-topics.csv"
	CSVTOPICCOUNTS  = "topics-by-count.csv"
	CSVRUNMETRICS   = "runs_sample.csv"
	TBTOPICDOCS     = "topics_by_texts"
	TBTOPICTERMS    = "words_by_topics"
	TBTOPICCOUNTS   = "topics_by_count"
	TBRUNMETRICS    = "runs_sample"

	SRCCSV    = "csv"
	SRCSQLITE = "sqlite"
	SRCPSQL   = "postgres"

	BLACKANDWHITE       = false
	DEFAULTDATADIR      = "./data"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 1
	DEFAULTLEFTRUN      = 0
	DEFAULTOUTDIR       = "./htr-report"
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "htr_rd"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "topicruns"
	DEFAULTRIGHTRUN     = 1
	DEFAULTSQLITEFILE   = "./data/topicruns.sqlite"
	JSONINDENT          = "  "
	LOADTIMEOUT         = 30 * time.Second
	MAXECHOREQPERSECOND = 40
	PALETTESIZE         = 10
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8010
	TEXTLIMIT           = 5 // documents per topic table
	TOKENLIMIT          = 5 // terms per topic table and rows in the shared-term matrix
	TOPICLIMIT          = 5 // topics per panel
	USEGZIP             = false
	WRITEPERMS          = 0644
	WSREADLIMIT         = 4096

	// chart geometry
	DEFAULTCHRTHEIGHT = "360px"
	DEFAULTCHRTWIDTH  = "520px"
	RADIALSVGSIZE     = 420
)
