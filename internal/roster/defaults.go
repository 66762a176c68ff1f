package roster

import "github.com/ultitrack/recorder/pkg/core"

func p(id, name, number string, g core.Gender) core.Player {
	return core.Player{ID: id, Name: name, Number: number, Gender: g}
}

// Default returns the built-in demo teams used when no roster file is set.
func Default() Teams {
	return Teams{
		HomeName: "Home",
		AwayName: "Away",
		Roster: core.Roster{
			Home: []core.Player{
				p("h1", "Alex K.", "12", core.GenderMale),
				p("h2", "Sarah J.", "04", core.GenderFemale),
				p("h3", "Mike R.", "88", core.GenderMale),
				p("h4", "Emily C.", "23", core.GenderFemale),
				p("h5", "David L.", "07", core.GenderMale),
				p("h6", "Jess M.", "99", core.GenderFemale),
				p("h7", "Chris P.", "10", core.GenderMale),
				p("h8", "Tom B.", "11", core.GenderMale),
				p("h9", "Anna W.", "13", core.GenderFemale),
				p("h10", "James H.", "14", core.GenderMale),
				p("h11", "Lisa K.", "15", core.GenderFemale),
				p("h12", "Rob M.", "16", core.GenderMale),
				p("h13", "Nina P.", "17", core.GenderFemale),
				p("h14", "Kevin D.", "18", core.GenderMale),
				p("h15", "Sam T.", "19", core.GenderMatching),
				p("h16", "Rachel G.", "20", core.GenderFemale),
				p("h17", "Steve O.", "21", core.GenderMale),
				p("h18", "Maria F.", "22", core.GenderFemale),
				p("h19", "Dan Y.", "24", core.GenderMale),
				p("h20", "Kelly S.", "25", core.GenderFemale),
				p("h21", "Brian L.", "26", core.GenderMale),
			},
			Away: []core.Player{
				p("a1", "Jordan", "01", core.GenderMale),
				p("a2", "Casey", "02", core.GenderFemale),
				p("a3", "Riley", "03", core.GenderMatching),
				p("a4", "Quinn", "04", core.GenderMale),
				p("a5", "Avery", "05", core.GenderFemale),
				p("a6", "Rowan", "06", core.GenderMale),
				p("a7", "Sage", "07", core.GenderFemale),
				p("a8", "Peyton", "08", core.GenderMale),
				p("a9", "Hayden", "09", core.GenderFemale),
				p("a10", "Taylor", "30", core.GenderMatching),
				p("a11", "Morgan", "31", core.GenderMale),
				p("a12", "Jamie", "32", core.GenderFemale),
				p("a13", "Cameron", "33", core.GenderMale),
				p("a14", "Reese", "34", core.GenderFemale),
				p("a15", "Drew", "35", core.GenderMale),
				p("a16", "Kendall", "36", core.GenderFemale),
				p("a17", "Skyler", "37", core.GenderMatching),
				p("a18", "Dakota", "38", core.GenderMale),
				p("a19", "Charlie", "39", core.GenderFemale),
				p("a20", "Parker", "40", core.GenderMale),
				p("a21", "Finley", "41", core.GenderFemale),
			},
		},
	}
}
