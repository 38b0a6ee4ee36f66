package perm

import (
	"testing"

	"github.com/thenoetrevino/taskmanager/internal/auth"
	"github.com/thenoetrevino/taskmanager/internal/models"
)

func TestCanEditUser(t *testing.T) {
	me := auth.Identity{UserID: 3, Username: "test1"}

	if !CanEditUser(me, 3) {
		t.Fatalf("expected user to edit own account")
	}
	if CanEditUser(me, 2) {
		t.Fatalf("expected user not to edit another account")
	}
	if CanEditUser(auth.Anonymous, 0) {
		t.Fatalf("expected anonymous actor to be denied even for id 0")
	}
	if CanDeleteUser(me, 1) {
		t.Fatalf("expected user not to delete another account")
	}
}

func TestCanDeleteTask_CreatorOnly(t *testing.T) {
	task := &models.Task{ID: 4, CreatorID: 3}
	executor := 2
	task.ExecutorID = &executor

	if !CanDeleteTask(auth.Identity{UserID: 3}, task) {
		t.Fatalf("expected creator to delete task")
	}
	if CanDeleteTask(auth.Identity{UserID: 2}, task) {
		t.Fatalf("expected executor not to delete task")
	}
	if CanDeleteTask(auth.Anonymous, task) {
		t.Fatalf("expected anonymous actor to be denied")
	}
	if CanDeleteTask(auth.Identity{UserID: 3}, nil) {
		t.Fatalf("expected nil task to be denied")
	}
}

func TestCanUpdateTask_AnyAuthenticatedUser(t *testing.T) {
	task := &models.Task{ID: 4, CreatorID: 3}

	if !CanUpdateTask(auth.Identity{UserID: 1}, task) {
		t.Fatalf("expected any logged-in user to update task")
	}
	if CanUpdateTask(auth.Anonymous, task) {
		t.Fatalf("expected anonymous actor to be denied")
	}
}

func TestCanManageCatalog(t *testing.T) {
	if !CanManageCatalog(auth.Identity{UserID: 1}) {
		t.Fatalf("expected logged-in user to manage statuses and labels")
	}
	if CanManageCatalog(auth.Anonymous) {
		t.Fatalf("expected anonymous actor to be denied")
	}
}
