package main

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saku/internal/candidate/models"
	"saku/internal/candidate/service"
	candidatestore "saku/internal/candidate/store"
	"saku/internal/rules"
	rulestore "saku/internal/rules/store"
	dErrors "saku/pkg/domain-errors"
	"saku/pkg/testutil"
)

func TestRegisterBatchRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rulesPath := testutil.WriteFile(t, t.TempDir(), "rules.yaml", testutil.SampleRules)
	svc, err := service.New(candidatestore.NewPostgres(db), rules.NewLoader(rulestore.NewFile(rulesPath)))
	require.NoError(t, err)

	regs := []models.Registration{
		{StudentID: "S-1", FullName: "Amina Otieno", Department: "Engineering", YearOfStudy: 3, Gender: models.GenderFemale},
		{StudentID: "S-1", FullName: "Amina Otieno", Department: "Engineering", YearOfStudy: 3, Gender: models.GenderFemale},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO delegates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE delegates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO delegates").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	registered, err := registerBatch(context.Background(), svc, db, regs)
	require.Error(t, err)
	assert.Nil(t, registered)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.Contains(t, err.Error(), "register S-1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterBatchCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rulesPath := testutil.WriteFile(t, t.TempDir(), "rules.yaml", testutil.SampleRules)
	svc, err := service.New(candidatestore.NewPostgres(db), rules.NewLoader(rulestore.NewFile(rulesPath)))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO delegates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE delegates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	registered, err := registerBatch(context.Background(), svc, db, []models.Registration{
		{StudentID: "S-2", FullName: "Brian Kamau", Department: "Engineering", YearOfStudy: 1, Gender: models.GenderMale},
	})
	require.NoError(t, err)
	require.Len(t, registered, 1)
	assert.Equal(t, models.VettingFailed, registered[0].VettingStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
