package profile

// Examples returns the two demo personas shipped with the simulator, used by
// `duet profiles init` to give a fresh install something to run.
func Examples() []Profile {
	return []Profile{
		{
			Name:       "Alice Johnson",
			Age:        28,
			Occupation: "Software Engineer",
			Hobbies:    []string{"rock climbing", "photography", "cooking"},
			Personality: Personality{
				Traits:    []string{"adventurous", "creative", "analytical"},
				Interests: []string{"technology", "outdoor activities", "art"},
				Goals:     []string{"start a tech company", "travel to Japan", "learn guitar"},
			},
			Background: Background{
				Education: "Computer Science BS",
				Location:  "San Francisco",
				Family:    "Single, close to siblings",
			},
		},
		{
			Name:       "Bob Smith",
			Age:        32,
			Occupation: "Marketing Manager",
			Hobbies:    []string{"running", "coffee brewing", "reading"},
			Personality: Personality{
				Traits:    []string{"social", "organized", "curious"},
				Interests: []string{"business", "fitness", "literature"},
				Goals:     []string{"run a marathon", "write a book", "learn Spanish"},
			},
			Background: Background{
				Education: "Marketing MBA",
				Location:  "Austin",
				Family:    "Married, two kids",
			},
		},
	}
}
