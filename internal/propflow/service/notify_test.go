package service

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

func TestLogNotifierOmitsLink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := LogNotifier{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}
	inv := domain.Invitation{ID: "inv-1", Email: "jane@example.com"}

	require.NoError(t, n.NotifyInvitation(context.Background(), inv, "https://app.propflow.test/invite/SECRET"))
	require.Contains(t, buf.String(), "inv-1")
	require.NotContains(t, buf.String(), "SECRET")
	require.NotContains(t, buf.String(), "jane@example.com")
}

func TestRenderInvitationEmail(t *testing.T) {
	t.Parallel()

	exp := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	subject, plain, html := renderInvitationEmail(domain.Invitation{
		Scope:       domain.ScopeTeam,
		CompanyName: "Acme <Realty>",
		Role:        domain.RoleAgent,
		ExpiresAt:   exp,
	}, "https://app.propflow.test/invite/tok")

	require.Equal(t, "Join Acme <Realty> on PropFlow", subject)
	require.Contains(t, plain, "as agent")
	require.Contains(t, plain, "2 April 2026")
	require.Contains(t, html, "Acme &lt;Realty&gt;")
	require.True(t, strings.Contains(html, `href="https://app.propflow.test/invite/tok"`))
}
