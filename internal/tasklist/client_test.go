package tasklist_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"gtodo/internal/logging"
	"gtodo/internal/service"
	"gtodo/internal/tasklist"
	"gtodo/internal/testutil"
)

// recordingNotifier collects notices.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recordingNotifier) Notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func equalTasks(a, b []service.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew_StartsLoading(t *testing.T) {
	c := tasklist.New(testutil.NewFakeService())
	st := c.State()
	if !st.Loading {
		t.Error("expected loading state before first load")
	}
	if len(st.Tasks) != 0 {
		t.Errorf("expected no tasks, got %v", st.Tasks)
	}
}

func TestLoad_ReplacesTasksInServerOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	a := svc.AddTask("first", false)
	b := svc.AddTask("second", true)
	c := tasklist.New(svc)

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := c.State()
	if st.Loading {
		t.Error("expected loading to end")
	}
	if !equalTasks(st.Tasks, []service.Task{a, b}) {
		t.Errorf("unexpected tasks %v", st.Tasks)
	}
}

func TestLoad_FailureKeepsTasksAndLogs(t *testing.T) {
	svc := testutil.NewFakeService()
	existing := svc.AddTask("cached", false)

	var buf bytes.Buffer
	c := tasklist.New(svc, tasklist.WithLogger(logging.New(&buf, logging.DefaultOptions())))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.ListErr = testutil.NetworkDown(testutil.OpList)
	err := c.Load(context.Background())
	if !errors.Is(err, service.ErrNetwork) {
		t.Fatalf("expected network failure, got %v", err)
	}
	if !equalTasks(c.State().Tasks, []service.Task{existing}) {
		t.Errorf("tasks changed on failed load: %v", c.State().Tasks)
	}
	if !strings.Contains(buf.String(), "failed to load tasks") {
		t.Errorf("expected error logged, got %q", buf.String())
	}
	if svc.Calls(testutil.OpList) != 2 {
		t.Errorf("expected no retry, got %d list calls", svc.Calls(testutil.OpList))
	}
}

func TestLoad_InitialFailureLeavesEmptyState(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = testutil.NetworkDown(testutil.OpList)
	c := tasklist.New(svc)

	if err := c.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	st := c.State()
	if len(st.Tasks) != 0 {
		t.Errorf("expected empty tasks, got %v", st.Tasks)
	}
	if st.Loading {
		t.Error("expected loading to end after failure")
	}
}

func TestCreate_AppendsInCallOrder(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc)
	titles := []string{"one", "two", "three", "four"}

	for _, title := range titles {
		if _, ok, err := c.Create(context.Background(), title); err != nil || !ok {
			t.Fatalf("create %q: ok=%v err=%v", title, ok, err)
		}
	}

	tasks := c.State().Tasks
	if len(tasks) != len(titles) {
		t.Fatalf("expected %d tasks, got %d", len(titles), len(tasks))
	}
	for i, title := range titles {
		if tasks[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, tasks[i].Title)
		}
		if tasks[i].Completed {
			t.Errorf("new task %q should not be completed", title)
		}
	}
}

func TestCreate_BlankTitleIsNoop(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		svc := testutil.NewFakeService()
		c := tasklist.New(svc)
		c.SetInput(title)

		task, ok, err := c.Create(context.Background(), title)
		if err != nil || ok || task != (service.Task{}) {
			t.Errorf("create(%q): expected no-op, got %v %v %v", title, task, ok, err)
		}
		if svc.TotalCalls() != 0 {
			t.Errorf("create(%q) issued %d requests", title, svc.TotalCalls())
		}
		if len(c.State().Tasks) != 0 {
			t.Errorf("create(%q) changed tasks", title)
		}
	}
}

func TestCreate_ClearsMatchingInputOnSuccess(t *testing.T) {
	c := tasklist.New(testutil.NewFakeService())
	c.SetInput("buy milk")

	if _, ok, err := c.Create(context.Background(), "buy milk"); err != nil || !ok {
		t.Fatalf("create: ok=%v err=%v", ok, err)
	}
	st := c.State()
	if st.PendingInput != "" {
		t.Errorf("expected input cleared, got %q", st.PendingInput)
	}
	if len(st.Tasks) != 1 || st.Tasks[0].Title != "buy milk" {
		t.Errorf("unexpected tasks %v", st.Tasks)
	}
}

func TestCreate_KeepsUnrelatedDraft(t *testing.T) {
	c := tasklist.New(testutil.NewFakeService())
	c.SetInput("walk dog")

	if _, ok, err := c.Create(context.Background(), "other"); err != nil || !ok {
		t.Fatalf("create: ok=%v err=%v", ok, err)
	}
	if got := c.State().PendingInput; got != "walk dog" {
		t.Errorf("expected draft kept, got %q", got)
	}
}

func TestCreate_KeepsInputOnFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = testutil.NetworkDown(testutil.OpCreate)
	c := tasklist.New(svc)
	c.SetInput("buy milk")

	if _, ok, err := c.Create(context.Background(), "buy milk"); err == nil || ok {
		t.Fatalf("expected failure, got ok=%v err=%v", ok, err)
	}
	st := c.State()
	if st.PendingInput != "buy milk" {
		t.Errorf("expected input retained, got %q", st.PendingInput)
	}
	if len(st.Tasks) != 0 {
		t.Errorf("expected no tasks, got %v", st.Tasks)
	}
}

func TestRemove_ThenLoadOmitsTask(t *testing.T) {
	svc := testutil.NewFakeService()
	first := svc.AddTask("first", false)
	second := svc.AddTask("second", false)
	c := tasklist.New(svc)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := c.Remove(context.Background(), first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !equalTasks(c.State().Tasks, []service.Task{second}) {
		t.Errorf("unexpected tasks after remove %v", c.State().Tasks)
	}

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := c.State().Find(first.ID); ok {
		t.Error("removed task came back after reload")
	}
}

func TestRemove_AbsentLocallyIsNotAnError(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("server only", false)
	c := tasklist.New(svc)

	if err := c.Remove(context.Background(), task.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.State().Tasks) != 0 {
		t.Errorf("unexpected tasks %v", c.State().Tasks)
	}
}

func TestRemove_FailureKeepsTask(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("stubborn", false)
	c := tasklist.New(svc)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	svc.DeleteErr = &service.Error{Kind: service.KindServer, Op: "delete", Status: 500}
	if err := c.Remove(context.Background(), task.ID); !errors.Is(err, service.ErrServer) {
		t.Fatalf("expected server rejection, got %v", err)
	}
	if !equalTasks(c.State().Tasks, []service.Task{task}) {
		t.Errorf("task should remain after failed delete, got %v", c.State().Tasks)
	}
}

func TestToggle_TwiceRestoresFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("flip me", false)
	c := tasklist.New(svc)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	for i, want := range []bool{true, false} {
		current := c.State().Tasks[0]
		updated, err := c.Toggle(context.Background(), current)
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if updated.Completed != want {
			t.Errorf("toggle %d: expected completed=%v, got %v", i, want, updated.Completed)
		}
		if c.State().Tasks[0].Completed != want {
			t.Errorf("toggle %d: local state not reconciled", i)
		}
	}
}

// serverWins rewrites the title on update so the test can tell whether the
// full response record was applied.
type serverWins struct {
	*testutil.FakeService
}

func (s serverWins) UpdateTask(ctx context.Context, id service.TaskID, title string, completed bool) (service.Task, error) {
	return s.FakeService.UpdateTask(ctx, id, strings.ToUpper(title), completed)
}

func TestToggle_AppliesFullServerRecord(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask("quiet", false)
	c := tasklist.New(serverWins{fake})
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := c.Toggle(context.Background(), c.State().Tasks[0]); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	got := c.State().Tasks[0]
	if got.Title != "QUIET" || !got.Completed {
		t.Errorf("expected server record to win, got %+v", got)
	}
}

func TestToggle_FailureNotifiesAndKeepsState(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("flip me", false)
	notifier := &recordingNotifier{}
	c := tasklist.New(svc, tasklist.WithNotifier(notifier))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	svc.UpdateErr = testutil.NetworkDown(testutil.OpUpdate)
	if _, err := c.Toggle(context.Background(), task); err == nil {
		t.Fatal("expected error")
	}
	if notifier.count() != 1 || notifier.msgs[0] != tasklist.ToggleFailedNotice {
		t.Errorf("expected one notice, got %v", notifier.msgs)
	}
	if c.State().Tasks[0].Completed {
		t.Error("local state changed on failed toggle")
	}
}

func TestOnlyToggleNotifies(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListErr = testutil.NetworkDown(testutil.OpList)
	svc.CreateErr = testutil.NetworkDown(testutil.OpCreate)
	svc.DeleteErr = testutil.NetworkDown(testutil.OpDelete)
	notifier := &recordingNotifier{}
	c := tasklist.New(svc, tasklist.WithNotifier(notifier))

	_ = c.Load(context.Background())
	_, _, _ = c.Create(context.Background(), "x")
	_ = c.Remove(context.Background(), "1")

	if notifier.count() != 0 {
		t.Errorf("expected no notices, got %v", notifier.msgs)
	}
}

func TestRefresh_ReplacesLocalEntry(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("old", false)
	c := tasklist.New(svc)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := svc.UpdateTask(context.Background(), task.ID, "new", true); err != nil {
		t.Fatalf("server update: %v", err)
	}

	got, err := c.Refresh(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got.Title != "new" || c.State().Tasks[0].Title != "new" {
		t.Errorf("expected refreshed record, got %+v / %+v", got, c.State().Tasks[0])
	}
}

// The scenario from a fresh session: create, toggle, remove.
func TestScenario_CreateToggleRemove(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc)
	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	created, ok, err := c.Create(ctx, "buy milk")
	if err != nil || !ok {
		t.Fatalf("create: ok=%v err=%v", ok, err)
	}
	want := service.Task{ID: "1", Title: "buy milk", Completed: false}
	if !equalTasks(c.State().Tasks, []service.Task{want}) {
		t.Fatalf("after create: %v", c.State().Tasks)
	}

	if _, err := c.Toggle(ctx, created); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	want.Completed = true
	if !equalTasks(c.State().Tasks, []service.Task{want}) {
		t.Fatalf("after toggle: %v", c.State().Tasks)
	}

	if err := c.Remove(ctx, "1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(c.State().Tasks) != 0 {
		t.Fatalf("after remove: %v", c.State().Tasks)
	}
}

func TestConcurrentCreates_AllApplied(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := c.Create(context.Background(), "task"); err != nil {
				t.Errorf("create: %v", err)
			}
		}()
	}
	wg.Wait()

	if len(c.State().Tasks) != n {
		t.Errorf("expected %d tasks, got %d", n, len(c.State().Tasks))
	}
}

// A load that completes after a delete replaces the list with whatever the
// server returned when it answered.
func TestOverlappingLoad_LastResponseWins(t *testing.T) {
	svc := testutil.NewFakeService()
	keep := svc.AddTask("keep", false)
	gone := svc.AddTask("gone", false)

	listStarted := make(chan struct{})
	releaseList := make(chan struct{})
	var once sync.Once
	svc.OnCall = func(op string) {
		if op == testutil.OpList {
			once.Do(func() { close(listStarted) })
			<-releaseList
		}
	}
	c := tasklist.New(svc, tasklist.WithState(tasklist.State{Tasks: []service.Task{keep, gone}}))

	done := make(chan error, 1)
	go func() { done <- c.Load(context.Background()) }()
	<-listStarted

	if err := c.Remove(context.Background(), gone.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	close(releaseList)
	if err := <-done; err != nil {
		t.Fatalf("load: %v", err)
	}

	if !equalTasks(c.State().Tasks, []service.Task{keep}) {
		t.Errorf("unexpected tasks %v", c.State().Tasks)
	}
}

func TestLocalSettersDoNotCallServer(t *testing.T) {
	svc := testutil.NewFakeService()
	c := tasklist.New(svc)

	c.SetFilter(tasklist.FilterPending)
	c.SetTheme(tasklist.ThemeDark)
	c.SetInput("draft")

	st := c.State()
	if st.Filter != tasklist.FilterPending || st.Theme != tasklist.ThemeDark || st.PendingInput != "draft" {
		t.Errorf("unexpected state %+v", st)
	}
	if svc.TotalCalls() != 0 {
		t.Errorf("expected no requests, got %d", svc.TotalCalls())
	}
}
