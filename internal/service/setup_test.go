package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/ganttline/internal/db"
	"github.com/alexanderramin/ganttline/internal/repository"
	"github.com/alexanderramin/ganttline/internal/testutil"
)

type testRepos struct {
	db       *sql.DB
	projects repository.ProjectRepo
	tasks    repository.TaskRepo
	logs     repository.WorkLogRepo
	adhoc    repository.AdhocRepo
	prefs    repository.PreferencesRepo
	uow      *db.SQLiteUnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	store := testutil.NewStore(t)
	database := store.DB
	return testRepos{
		db:       database,
		projects: repository.NewSQLiteProjectRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
		logs:     repository.NewSQLiteWorkLogRepo(database),
		adhoc:    repository.NewSQLiteAdhocRepo(database),
		prefs:    repository.NewSQLitePreferencesRepo(database),
		uow:      store.UoW,
	}
}

func (r testRepos) stateService() StateService {
	return NewStateService(r.uow, r.prefs)
}

// recordingObserver keeps every event it sees.
type recordingObserver struct {
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.events = append(o.events, e)
}
