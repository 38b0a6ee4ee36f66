package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/taskmanager/internal/models"
	"github.com/thenoetrevino/taskmanager/internal/perm"
	taskservice "github.com/thenoetrevino/taskmanager/internal/services/task"
)

var taskFailure = failure{
	redirect: "/tasks",
	denied:   "A task can only be deleted by its creator.",
}

// taskChoices are the options offered by the task form and the list filter
type taskChoices struct {
	Statuses []*models.Status
	Users    []*models.User
	Labels   []*models.Label
}

func (s *Server) loadChoices(c *gin.Context) (*taskChoices, error) {
	ctx, actor := c.Request.Context(), identity(c)
	statuses, err := s.app.StatusService.ListStatuses(ctx, actor)
	if err != nil {
		return nil, err
	}
	users, err := s.app.UserService.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	labels, err := s.app.LabelService.ListLabels(ctx, actor)
	if err != nil {
		return nil, err
	}
	return &taskChoices{Statuses: statuses, Users: users, Labels: labels}, nil
}

func (s *Server) listTasks(c *gin.Context) {
	actor := identity(c)
	in := taskservice.FilterInput{
		Status:    c.Query("status"),
		Executor:  c.Query("executor"),
		Label:     c.Query("label"),
		SelfTasks: c.Query("self_tasks") != "",
	}

	choices, err := s.loadChoices(c)
	if err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	data := gin.H{
		"Title":   "Tasks",
		"Choices": choices,
		"Filter":  in,
	}

	filter, err := taskservice.BuildFilter(actor, in)
	if err != nil {
		errs, ok := formErrors(err)
		if !ok {
			s.serverError(c, err)
			return
		}
		data["Errors"] = errs
		s.render(c, http.StatusOK, "tasks.html", data)
		return
	}

	tasks, err := s.app.TaskService.ListTasks(c.Request.Context(), actor, filter)
	if err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	data["Tasks"] = tasks
	s.render(c, http.StatusOK, "tasks.html", data)
}

func (s *Server) showTask(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	task, err := s.app.TaskService.GetTaskDetail(c.Request.Context(), identity(c), id)
	if err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	s.render(c, http.StatusOK, "task.html", gin.H{"Title": task.Name, "Task": task})
}

// taskForm holds submitted values so a rejected form can be re-rendered
type taskForm struct {
	Name        string
	Description string
	Status      string
	Executor    string
	Labels      []int
}

func taskFormFromRequest(c *gin.Context) (taskForm, taskservice.TaskRequest) {
	form := taskForm{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Status:      c.PostForm("status"),
		Executor:    c.PostForm("executor"),
	}

	req := taskservice.TaskRequest{
		Name:        form.Name,
		Description: form.Description,
		StatusID:    formID(form.Status),
	}
	if id := formID(form.Executor); id != 0 {
		req.ExecutorID = &id
	}
	for _, raw := range c.PostFormArray("labels") {
		id := formID(raw)
		if id == 0 {
			// Unparseable choices fail the existence check
			id = -1
		}
		req.LabelIDs = append(req.LabelIDs, id)
		form.Labels = append(form.Labels, id)
	}
	return form, req
}

// formID parses a select value. Empty or malformed values yield 0.
func formID(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return id
}

func taskFormFromTask(t *models.Task) taskForm {
	form := taskForm{
		Name:        t.Name,
		Description: t.Description,
		Status:      strconv.Itoa(t.StatusID),
		Labels:      t.LabelIDs,
	}
	if t.ExecutorID != nil {
		form.Executor = strconv.Itoa(*t.ExecutorID)
	}
	return form
}

func (s *Server) renderTaskForm(c *gin.Context, heading, action, submit string, form taskForm, errs map[string]string) {
	choices, err := s.loadChoices(c)
	if err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	s.render(c, http.StatusOK, "task_form.html", gin.H{
		"Title":   heading,
		"Heading": heading,
		"Action":  action,
		"Submit":  submit,
		"Form":    form,
		"Choices": choices,
		"Errors":  errs,
	})
}

func (s *Server) createTaskForm(c *gin.Context) {
	s.renderTaskForm(c, "Create task", "/tasks/create", "Create", taskForm{}, nil)
}

func (s *Server) createTask(c *gin.Context) {
	form, req := taskFormFromRequest(c)
	_, err := s.app.TaskService.CreateTask(c.Request.Context(), identity(c), req)
	if err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderTaskForm(c, "Create task", "/tasks/create", "Create", form, errs)
			return
		}
		s.fail(c, err, taskFailure)
		return
	}
	setFlash(c, flashSuccess, "Task successfully created")
	c.Redirect(http.StatusFound, "/tasks")
}

func (s *Server) updateTaskForm(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	task, err := s.app.TaskService.GetTask(c.Request.Context(), identity(c), id)
	if err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	s.renderTaskForm(c, "Update task", taskPath(id, "update"), "Update", taskFormFromTask(task), nil)
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	form, req := taskFormFromRequest(c)
	_, err := s.app.TaskService.UpdateTask(c.Request.Context(), identity(c), id, req)
	if err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderTaskForm(c, "Update task", taskPath(id, "update"), "Update", form, errs)
			return
		}
		s.fail(c, err, taskFailure)
		return
	}
	setFlash(c, flashSuccess, "Task successfully updated")
	c.Redirect(http.StatusFound, "/tasks")
}

func (s *Server) deleteTaskForm(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	task, err := s.app.TaskService.GetTask(c.Request.Context(), identity(c), id)
	if err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	if !perm.CanDeleteTask(identity(c), task) {
		setFlash(c, flashDanger, taskFailure.denied)
		c.Redirect(http.StatusFound, "/tasks")
		return
	}
	s.render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":   "Delete task",
		"Heading": "Delete task",
		"Target":  task.Name,
		"Action":  taskPath(id, "delete"),
	})
}

func (s *Server) deleteTask(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.app.TaskService.DeleteTask(c.Request.Context(), identity(c), id); err != nil {
		s.fail(c, err, taskFailure)
		return
	}
	setFlash(c, flashSuccess, "Task successfully deleted")
	c.Redirect(http.StatusFound, "/tasks")
}

func taskPath(id int, action string) string {
	return "/tasks/" + strconv.Itoa(id) + "/" + action
}
