package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	require.Len(t, fx.Departments, 8)
	names := make(map[int]string, len(fx.Departments))
	for _, d := range fx.Departments {
		names[d.ID] = d.Name
	}
	assert.Equal(t, "Recursos Humanos", names[1])
	assert.Equal(t, "Tecnologia da Informação", names[2])
	assert.Equal(t, "Jurídico", names[8])
}

func TestDemoFixturesAreConsistent(t *testing.T) {
	fx, err := LoadFixtures()
	require.NoError(t, err)

	employees := map[int]bool{}
	nifs := map[string]bool{}
	emails := map[string]bool{}
	for _, e := range fx.Demo.Employees {
		employees[e.ID] = true
		assert.False(t, nifs[e.NIF], "duplicate nif %s", e.NIF)
		assert.False(t, emails[e.Email], "duplicate email %s", e.Email)
		nifs[e.NIF] = true
		emails[e.Email] = true
		assert.NotEmpty(t, e.AdmissionDate)
	}
	for dept, manager := range fx.Demo.Managers {
		assert.True(t, employees[manager], "department %d manager %d is not a demo employee", dept, manager)
	}
	for _, tr := range fx.Demo.Trainings {
		for _, p := range tr.Participants {
			assert.True(t, employees[p], "training %d participant %d unknown", tr.ID, p)
		}
	}
	jobs := map[int]bool{}
	for _, j := range fx.Demo.Jobs {
		jobs[j.ID] = true
	}
	for _, c := range fx.Demo.Candidates {
		assert.True(t, jobs[c.JobID], "candidate %d applies to unknown job %d", c.ID, c.JobID)
	}
}
