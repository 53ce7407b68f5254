package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/propflow/internal/propflow/domain"
)

func TestPrincipalLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("UnknownIdentity", func(t *testing.T) {
		_, err := f.principals.Load(ctx, "01JNOSUCHIDENTITY0000000000")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("IdentityWithoutProfile", func(t *testing.T) {
		id, err := f.identities.CreateIdentity(ctx, "loose@propflow.test", testPassword)
		require.NoError(t, err)

		p, err := f.principals.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "loose@propflow.test", p.Email)
		assert.Nil(t, p.Profile)
		assert.Nil(t, p.Company)
		assert.Empty(t, p.Permissions)
	})

	t.Run("CompanyMemberGetsPlan", func(t *testing.T) {
		company := f.seedCompany(t, "Bayside Lettings", "starter")
		_, token := f.issue(t, platformAdmin(), IssueParams{
			Scope:     domain.ScopeCompanyJoin,
			Role:      domain.RoleLandlord,
			CompanyID: company.ID,
		})
		ref, err := f.provision.Accept(ctx, token, domain.Credentials{
			Email: "lou@bayside.test", Password: testPassword, FullName: "Lou Landlord",
		})
		require.NoError(t, err)

		p, err := f.principals.Load(ctx, ref.UserID)
		require.NoError(t, err)
		require.NotNil(t, p.Profile)
		assert.Equal(t, domain.RoleLandlord, p.Profile.Role)
		require.NotNil(t, p.Plan)
		assert.Equal(t, "starter", p.Plan.Name)
		assert.False(t, p.IsCompanyAdmin(company.ID))
		assert.False(t, p.Can(domain.PermInviteCompany))
	})
}
