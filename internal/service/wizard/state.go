package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/duetsim/duet/internal/profile"
)

// BuilderState accumulates the profile across steps. SavedID is filled by
// the final step.
type BuilderState struct {
	Profile profile.Profile
	SavedID string
}

func NewBuilderState() *BuilderState {
	return &BuilderState{}
}

func applyName(v string, st *BuilderState) error {
	if v == "" {
		return fmt.Errorf("name is required")
	}
	st.Profile.Name = v
	return nil
}

func applyAge(v string, st *BuilderState) error {
	if v == "" {
		return nil
	}
	age, err := strconv.Atoi(v)
	if err != nil || age < 0 {
		return fmt.Errorf("age must be a non-negative number")
	}
	st.Profile.Age = age
	return nil
}

func applyOccupation(v string, st *BuilderState) error {
	st.Profile.Occupation = v
	return nil
}

func applyHobbies(v string, st *BuilderState) error {
	st.Profile.Hobbies = splitList(v)
	return nil
}

func applyTraits(v string, st *BuilderState) error {
	st.Profile.Personality.Traits = splitList(v)
	return nil
}

func applyGoals(v string, st *BuilderState) error {
	st.Profile.Personality.Goals = splitList(v)
	return nil
}

func applyLocation(v string, st *BuilderState) error {
	st.Profile.Background.Location = v
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
