package profile

// Merge overlays extra onto base: scalars keep base's value unless empty,
// list fields take the union with base's order first.
func Merge(base, extra Profile) Profile {
	out := base

	if out.Name == "" {
		out.Name = extra.Name
	}
	if out.Age == 0 {
		out.Age = extra.Age
	}
	if out.Occupation == "" {
		out.Occupation = extra.Occupation
	}
	if out.Background.Education == "" {
		out.Background.Education = extra.Background.Education
	}
	if out.Background.Location == "" {
		out.Background.Location = extra.Background.Location
	}
	if out.Background.Family == "" {
		out.Background.Family = extra.Background.Family
	}

	out.Hobbies = unionKeepOrder(base.Hobbies, extra.Hobbies)
	out.Personality.Traits = unionKeepOrder(base.Personality.Traits, extra.Personality.Traits)
	out.Personality.Interests = unionKeepOrder(base.Personality.Interests, extra.Personality.Interests)
	out.Personality.Goals = unionKeepOrder(base.Personality.Goals, extra.Personality.Goals)

	return out
}

func unionKeepOrder(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var out []string
	for _, v := range append(append([]string{}, a...), b...) {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
