package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskmasterhq/taskmaster/internal/models"
	"github.com/taskmasterhq/taskmaster/internal/repository"
)

func newTestService() *TaskService {
	return NewTaskService(repository.NewMemoryTaskRepository())
}

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name         string
		input        CreateTaskInput
		wantErr      bool
		wantField    string
		wantPriority models.Priority
		wantCategory models.Category
	}{
		{
			name:         "defaults applied",
			input:        CreateTaskInput{Title: "Buy milk"},
			wantPriority: models.PriorityMedium,
			wantCategory: models.CategoryPersonal,
		},
		{
			name:         "explicit priority and category",
			input:        CreateTaskInput{Title: "Write report", Priority: "high", Category: "work"},
			wantPriority: models.PriorityHigh,
			wantCategory: models.CategoryWork,
		},
		{
			name:      "empty title",
			input:     CreateTaskInput{Title: ""},
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "whitespace only title",
			input:     CreateTaskInput{Title: "   \t "},
			wantErr:   true,
			wantField: "title",
		},
		{
			name:      "invalid priority",
			input:     CreateTaskInput{Title: "Task", Priority: "critical"},
			wantErr:   true,
			wantField: "priority",
		},
		{
			name:      "invalid category",
			input:     CreateTaskInput{Title: "Task", Category: "hobby"},
			wantErr:   true,
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			ctx := context.Background()

			task, err := svc.Create(ctx, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)

				// Nothing may be persisted on validation failure.
				all, lerr := svc.List(ctx, ListTasksInput{})
				require.NoError(t, lerr)
				assert.Empty(t, all)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, task.ID)
			assert.Equal(t, tt.wantPriority, task.Priority)
			assert.Equal(t, tt.wantCategory, task.Category)
			assert.Equal(t, models.StatusPending, task.Status)
			assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))
		})
	}
}

func TestTaskService_Create_TrimsTitle(t *testing.T) {
	svc := newTestService()

	task, err := svc.Create(context.Background(), CreateTaskInput{Title: "  Buy milk  "})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
}

func TestTaskService_RoundTrip(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, CreateTaskInput{
		Title:       "Buy milk",
		Description: "two liters",
		DueDate:     &due,
		Priority:    "low",
		Category:    "study",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestTaskService_Get_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Get(context.Background(), "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskService_Update(t *testing.T) {
	t.Run("partial update preserves other fields", func(t *testing.T) {
		svc := newTestService()
		ctx := context.Background()

		created, err := svc.Create(ctx, CreateTaskInput{
			Title:       "Buy milk",
			Description: "two liters",
			Priority:    "high",
			Category:    "work",
		})
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		completed := "completed"
		updated, err := svc.Update(ctx, created.ID, UpdateTaskInput{Status: &completed})
		require.NoError(t, err)

		assert.Equal(t, models.StatusCompleted, updated.Status)
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Description, updated.Description)
		assert.Equal(t, created.Priority, updated.Priority)
		assert.Equal(t, created.Category, updated.Category)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("status transitions back to pending", func(t *testing.T) {
		svc := newTestService()
		ctx := context.Background()

		created, err := svc.Create(ctx, CreateTaskInput{Title: "Task"})
		require.NoError(t, err)

		completed, pending := "completed", "pending"
		_, err = svc.Update(ctx, created.ID, UpdateTaskInput{Status: &completed})
		require.NoError(t, err)
		updated, err := svc.Update(ctx, created.ID, UpdateTaskInput{Status: &pending})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, updated.Status)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		svc := newTestService()
		ctx := context.Background()

		created, err := svc.Create(ctx, CreateTaskInput{Title: "Buy milk"})
		require.NoError(t, err)

		empty := "  "
		_, err = svc.Update(ctx, created.ID, UpdateTaskInput{Title: &empty})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "title", ve.Field)

		// Record untouched.
		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
		assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt))
	})

	t.Run("invalid enum rejected", func(t *testing.T) {
		svc := newTestService()
		ctx := context.Background()

		created, err := svc.Create(ctx, CreateTaskInput{Title: "Task"})
		require.NoError(t, err)

		bogus := "urgent"
		_, err = svc.Update(ctx, created.ID, UpdateTaskInput{Priority: &bogus})
		assert.True(t, IsValidation(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc := newTestService()

		title := "Task"
		_, err := svc.Update(context.Background(), "missing-id", UpdateTaskInput{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTaskService_Delete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func seedTasks(t *testing.T, svc *TaskService) map[string]*models.Task {
	t.Helper()
	ctx := context.Background()

	early := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)

	tasks := map[string]*models.Task{}
	for _, in := range []CreateTaskInput{
		{Title: "alpha", Priority: "low", Category: "work", DueDate: &late},
		{Title: "bravo", Priority: "high", Category: "personal", DueDate: &early},
		{Title: "charlie", Priority: "medium", Category: "work"},
	} {
		task, err := svc.Create(ctx, in)
		require.NoError(t, err)
		tasks[task.Title] = task
		time.Sleep(2 * time.Millisecond)
	}

	completed := "completed"
	_, err := svc.Update(ctx, tasks["bravo"].ID, UpdateTaskInput{Status: &completed})
	require.NoError(t, err)

	return tasks
}

func titles(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

func TestTaskService_List(t *testing.T) {
	t.Run("status filter", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{Status: "completed"})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "bravo", tasks[0].Title)
		for _, task := range tasks {
			assert.Equal(t, models.StatusCompleted, task.Status)
		}
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{
			Category: "work",
			Priority: "low",
		})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "alpha", tasks[0].Title)
	})

	t.Run("default order is created_at descending", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{})
		require.NoError(t, err)
		assert.Equal(t, []string{"charlie", "bravo", "alpha"}, titles(tasks))
	})

	t.Run("priority sort is semantic", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{SortBy: "priority", Order: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"bravo", "charlie", "alpha"}, titles(tasks))

		tasks, err = svc.List(context.Background(), ListTasksInput{SortBy: "priority", Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "charlie", "bravo"}, titles(tasks))
	})

	t.Run("missing due dates sort last in either direction", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{SortBy: "due_date", Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"bravo", "alpha", "charlie"}, titles(tasks))

		tasks, err = svc.List(context.Background(), ListTasksInput{SortBy: "due_date", Order: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, titles(tasks))
	})

	t.Run("title sort", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{SortBy: "title", Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "bravo", "charlie"}, titles(tasks))
	})

	t.Run("unknown sort key falls back to created_at", func(t *testing.T) {
		svc := newTestService()
		seedTasks(t, svc)

		tasks, err := svc.List(context.Background(), ListTasksInput{SortBy: "color"})
		require.NoError(t, err)
		assert.Equal(t, []string{"charlie", "bravo", "alpha"}, titles(tasks))
	})

	t.Run("invalid filter value", func(t *testing.T) {
		svc := newTestService()

		_, err := svc.List(context.Background(), ListTasksInput{Status: "archived"})
		assert.True(t, IsValidation(err))
	})

	t.Run("empty store lists empty", func(t *testing.T) {
		svc := newTestService()

		tasks, err := svc.List(context.Background(), ListTasksInput{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestStatusService(t *testing.T) {
	svc := NewStatusService(repository.NewMemoryStatusCheckRepository())
	ctx := context.Background()

	_, err := svc.Record(ctx, "  ")
	assert.True(t, IsValidation(err))

	check, err := svc.Record(ctx, "mobile-client")
	require.NoError(t, err)
	assert.NotEmpty(t, check.ID)
	assert.Equal(t, "mobile-client", check.ClientName)

	checks, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.Equal(t, check.ID, checks[0].ID)
}
