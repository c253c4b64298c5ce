package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevAstrumAI/Funia/internal/core/knowledge"
)

func TestReloader_Schedule(t *testing.T) {
	r := NewReloader(newTestService(t, &stubAnswerer{}), dataDir)

	require.NoError(t, r.Schedule(""))
	assert.False(t, r.Scheduled())

	assert.Error(t, r.Schedule("every ten minutes"))
	assert.False(t, r.Scheduled())

	require.NoError(t, r.Schedule("@every 10m"))
	require.NoError(t, r.Schedule("*/5 * * * *"))
	assert.True(t, r.Scheduled())
}

func TestReloader_ReloadNow(t *testing.T) {
	dir := copyData(t)
	s := newTestService(t, &stubAnswerer{})
	r := NewReloader(s, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, knowledge.FAQsFile), []byte(`{}`), 0o644))
	require.NoError(t, r.ReloadNow())
	assert.Empty(t, s.Knowledge().FAQs)

	require.NoError(t, os.WriteFile(filepath.Join(dir, knowledge.SiteFile), []byte(`{`), 0o644))
	assert.Error(t, r.ReloadNow())
	assert.Empty(t, s.Knowledge().FAQs)
}

func TestReloader_StartStop(t *testing.T) {
	r := NewReloader(newTestService(t, &stubAnswerer{}), dataDir)
	require.NoError(t, r.Schedule("@every 1h"))
	r.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
	assert.NoError(t, ctx.Err())
}
