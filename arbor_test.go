package arbor_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/demo"
	"github.com/aretw0/arbor/pkg/adapters/memory"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/schema"
)

func newEngine(t *testing.T, opts ...arbor.Option) *arbor.Engine {
	t.Helper()
	eng, err := arbor.New(opts...)
	require.NoError(t, err)
	require.NoError(t, eng.Register(demo.SignupName, demo.SignupFactory))
	return eng
}

// lastWidget returns the final choice or entry op of a pass.
func lastWidget(ops []domain.Op) *domain.Op {
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == domain.OpChoice || ops[i].Kind == domain.OpEntry {
			return &ops[i]
		}
	}
	return nil
}

func TestEngine_SignupFlow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	eng := newEngine(t, arbor.WithStore(store))

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)
	require.NotNil(t, resp.Target)
	assert.Equal(t, "name", resp.Target.Field)
	assert.Equal(t, domain.OpEntry, resp.Target.Widget)
	assert.False(t, resp.Complete)

	stored, err := store.Load(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "name", stored.Pending)
	assert.Equal(t, domain.StatusActive, stored.Status)

	id := resp.SessionID

	resp, err = eng.Submit(ctx, id, "name", "Alice")
	require.NoError(t, err)
	assert.Empty(t, resp.Notice)
	assert.Equal(t, "gender", resp.Target.Field)
	assert.Equal(t, domain.OpChoice, resp.Target.Widget)

	resp, err = eng.Submit(ctx, id, "gender", "M")
	require.NoError(t, err)
	assert.Equal(t, "kind.size", resp.Target.Field)
	w := lastWidget(resp.Ops)
	require.NotNil(t, w)
	assert.Equal(t, "kind.size", w.Field)
	assert.Len(t, w.Options, 3)

	resp, err = eng.Submit(ctx, id, "kind.size", "L")
	require.NoError(t, err)
	assert.True(t, resp.Complete)
	assert.Nil(t, resp.Target)
	assert.Nil(t, lastWidget(resp.Ops))
	assert.Equal(t, map[string]string{"name": "Alice", "gender": "M", "kind.size": "L"}, resp.Values)

	stored, err = store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusComplete, stored.Status)
	assert.Empty(t, stored.Pending)
	assert.Equal(t, []string{"name", "gender", "kind.size"}, stored.History)
}

func TestEngine_RejectionsLeaveSessionUnchanged(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	eng := newEngine(t, arbor.WithStore(store))

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	id := resp.SessionID

	t.Run("Field Not Pending", func(t *testing.T) {
		resp, err := eng.Submit(ctx, id, "gender", "M")
		require.NoError(t, err)
		assert.Contains(t, resp.Notice, `pending is "name"`)
		assert.Equal(t, "name", resp.Target.Field)
	})

	_, err = eng.Submit(ctx, id, "name", "Alice")
	require.NoError(t, err)

	t.Run("Unknown Code", func(t *testing.T) {
		resp, err := eng.Submit(ctx, id, "gender", "X")
		require.NoError(t, err)
		assert.Contains(t, resp.Notice, "invalid value for domain Gender::X")
		assert.Equal(t, "gender", resp.Target.Field)
	})

	t.Run("Stale Resubmit", func(t *testing.T) {
		resp, err := eng.Submit(ctx, id, "name", "Bob")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Notice)
		assert.Equal(t, "Alice", resp.Values["name"])
	})

	stored, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Alice"}, stored.Values)
	assert.Equal(t, []string{"name"}, stored.History)
	assert.Equal(t, "gender", stored.Pending)
}

func TestEngine_SubmitAfterComplete(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	id := resp.SessionID
	for _, in := range [][2]string{{"name", "Ann"}, {"gender", "F"}, {"kind.size", "S"}, {"kind.fit", "R"}} {
		resp, err = eng.Submit(ctx, id, in[0], in[1])
		require.NoError(t, err)
		require.Empty(t, resp.Notice)
	}
	require.True(t, resp.Complete)

	resp, err = eng.Submit(ctx, id, "kind.fit", "S")
	require.NoError(t, err)
	assert.Contains(t, resp.Notice, "nothing is pending")
	assert.Equal(t, "R", resp.Values["kind.fit"])
}

func TestEngine_InputSizeLimit(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t, arbor.WithMaxInputSize(4))

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)

	resp, err = eng.Submit(ctx, resp.SessionID, "name", "Alexander")
	require.NoError(t, err)
	assert.Contains(t, resp.Notice, "exceeds maximum")
	assert.Equal(t, "name", resp.Target.Field)
}

func TestEngine_Errors(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	_, err := eng.Create(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownSchema)

	_, err = eng.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = eng.Submit(ctx, "nope", "name", "x")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEngine_GetDoesNotMutate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	eng := newEngine(t, arbor.WithStore(store))

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	before, err := store.Load(ctx, resp.SessionID)
	require.NoError(t, err)

	got, err := eng.Get(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, resp.Ops, got.Ops)
	assert.Equal(t, resp.Target, got.Target)

	after, err := store.Load(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestEngine_Invalidate(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	require.NoError(t, eng.Invalidate(ctx, resp.SessionID))

	_, err = eng.Get(ctx, resp.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.NoError(t, eng.Invalidate(ctx, resp.SessionID))
}

func TestEngine_Record(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	_, err = eng.Submit(ctx, resp.SessionID, "name", "Alice")
	require.NoError(t, err)

	root, err := eng.Record(ctx, resp.SessionID)
	require.NoError(t, err)
	name, ok := root.Field("name").(*schema.Text)
	require.True(t, ok)
	v, err := name.Value()
	require.NoError(t, err)
	assert.Equal(t, "Alice", v)
}

func TestEngine_Hooks(t *testing.T) {
	ctx := context.Background()

	var (
		mu        sync.Mutex
		passes    int
		applied   []string
		rejected  []string
		completed int
		diffs     []*domain.StateDiff
	)
	hooks := domain.LifecycleHooks{
		OnPass: func(_ context.Context, e *domain.PassEvent) {
			mu.Lock()
			defer mu.Unlock()
			passes++
		},
		OnApply: func(_ context.Context, e *domain.InputEvent) {
			mu.Lock()
			defer mu.Unlock()
			applied = append(applied, e.Field)
		},
		OnReject: func(_ context.Context, e *domain.InputEvent) {
			mu.Lock()
			defer mu.Unlock()
			rejected = append(rejected, e.Field)
			var de *domain.DomainError
			assert.True(t, errors.As(e.Err, &de))
		},
		OnComplete: func(_ context.Context, e *domain.EventBase) {
			mu.Lock()
			defer mu.Unlock()
			completed++
			assert.Equal(t, domain.EventComplete, e.Type)
		},
		OnChange: func(_ context.Context, d *domain.StateDiff) {
			mu.Lock()
			defer mu.Unlock()
			diffs = append(diffs, d)
		},
	}
	eng := newEngine(t, arbor.WithLifecycleHooks(hooks))

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)
	id := resp.SessionID
	_, err = eng.Submit(ctx, id, "name", "Alice")
	require.NoError(t, err)
	_, err = eng.Submit(ctx, id, "gender", "Q")
	require.NoError(t, err)
	_, err = eng.Submit(ctx, id, "gender", "M")
	require.NoError(t, err)
	_, err = eng.Submit(ctx, id, "kind.size", "M")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, passes)
	assert.Equal(t, []string{"name", "gender", "kind.size"}, applied)
	assert.Equal(t, []string{"gender"}, rejected)
	assert.Equal(t, 1, completed)

	// Create, then one diff per accepted value; the rejection changes nothing.
	require.Len(t, diffs, 4)
	require.NotNil(t, diffs[0].Pending)
	assert.Equal(t, "name", *diffs[0].Pending)
	require.NotNil(t, diffs[3].Status)
	assert.Equal(t, domain.StatusComplete, *diffs[3].Status)
	assert.Equal(t, []string{"kind.size"}, diffs[3].Applied)
}

type staticSource []*dsl.Definition

func (s staticSource) Definitions(context.Context) ([]*dsl.Definition, error) {
	return s, nil
}

func TestEngine_LoadSource(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	survey := dsl.New("survey", "Quick survey").
		Domain("YesNo", domain.Option{Code: "Y", Label: "Yes"}, domain.Option{Code: "N", Label: "No"}).
		Fields(func(f *dsl.FieldList) {
			f.Choice("happy", "YesNo")
		}).
		Definition()

	n, err := eng.LoadSource(ctx, staticSource{survey})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	names := make([]string, 0)
	for _, info := range eng.Schemas() {
		names = append(names, info.Name)
	}
	assert.Equal(t, []string{"signup", "survey"}, names)

	resp, err := eng.Create(ctx, "survey")
	require.NoError(t, err)
	assert.Equal(t, "happy", resp.Target.Field)
	resp, err = eng.Submit(ctx, resp.SessionID, "happy", "Y")
	require.NoError(t, err)
	assert.True(t, resp.Complete)
}

func TestEngine_LoadSourceIsAllOrNothing(t *testing.T) {
	eng := newEngine(t)

	good := dsl.New("good", "").Fields(func(f *dsl.FieldList) { f.Text("a") }).Definition()
	bad := dsl.New("bad", "").Fields(func(f *dsl.FieldList) { f.Choice("x", "Nope") }).Definition()

	_, err := eng.LoadSource(context.Background(), staticSource{good, bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown domain")
	assert.False(t, eng.Registry().Has("good"))
}

func TestEngine_ConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t)

	resp, err := eng.Create(ctx, demo.SignupName)
	require.NoError(t, err)

	// Only one of the racing submissions can hit the pending target.
	var wg sync.WaitGroup
	notices := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := eng.Submit(ctx, resp.SessionID, "name", "Alice")
			if assert.NoError(t, err) {
				notices <- r.Notice
			}
		}()
	}
	wg.Wait()
	close(notices)

	accepted := 0
	for n := range notices {
		if n == "" {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}
