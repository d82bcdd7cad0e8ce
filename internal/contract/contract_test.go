package contract

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swayops/portal/internal/api"
	"github.com/swayops/portal/internal/apitest"
)

const respondCalls = "POST /contracts/respond/"

func setup(t *testing.T) (*apitest.Backend, *api.Client, string) {
	be := apitest.New(t)
	inf := be.AddInfluencer("Jane Doe", "jane@sway.test")
	cmp := be.AddCampaign("Summer Launch")
	ct := be.AddContract("Summer Launch Agreement", "Two posts and a story.")
	token := be.SendContract(ct.ID, inf.ID, cmp.ID)
	return be, api.New(be.URL), token
}

func TestRespondAccept(t *testing.T) {
	be, client, token := setup(t)
	ctx := context.Background()

	p := Load(ctx, client, token)
	require.Equal(t, StateReady, p.State())

	v := p.View()
	assert.Equal(t, Actions, v.Actions)
	assert.Equal(t, "Summer Launch Agreement", v.Contract.ContractTitle)
	assert.Equal(t, "Summer Launch", v.Contract.CampaignName)
	assert.Equal(t, api.ContractPending, v.Status)

	require.NoError(t, p.Respond(ctx, api.ActionAccept))
	v = p.View()
	assert.Equal(t, StateResponded, v.State)
	assert.Equal(t, api.ContractAccepted, v.Status)
	assert.Empty(t, v.Actions)
	assert.Empty(t, v.ComposeURL)
	assert.Equal(t, api.ContractAccepted, be.ContractStatusOf(token))
}

func TestAutoApplyFiresOnce(t *testing.T) {
	be, client, token := setup(t)
	ctx := context.Background()

	p := Load(ctx, client, token)
	require.NoError(t, p.AutoApply(ctx, "accept"))
	// re-render
	require.NoError(t, p.AutoApply(ctx, "accept"))
	require.NoError(t, p.AutoApply(ctx, "reject"))

	assert.Equal(t, 1, be.CallCount(respondCalls))
	assert.Equal(t, StateResponded, p.State())
	assert.Equal(t, api.ContractAccepted, be.ContractStatusOf(token))

	// reloading the same link doesn't submit again
	p = Load(ctx, client, token)
	require.NoError(t, p.AutoApply(ctx, "accept"))
	assert.Equal(t, 1, be.CallCount(respondCalls))
	assert.Equal(t, StateAlreadyResponded, p.State())
	assert.Equal(t, ErrAlreadyResponded.Error(), p.View().Message)
}

func TestAutoApplyIgnoresUnknownAction(t *testing.T) {
	be, client, token := setup(t)
	ctx := context.Background()

	p := Load(ctx, client, token)
	require.NoError(t, p.AutoApply(ctx, "approve"))
	require.NoError(t, p.AutoApply(ctx, ""))
	assert.Equal(t, 0, be.CallCount(respondCalls))
	assert.Equal(t, StateReady, p.State())
}

func TestTerminalContractRefusesSecondResponse(t *testing.T) {
	be, client, token := setup(t)
	ctx := context.Background()

	require.NoError(t, Load(ctx, client, token).Respond(ctx, api.ActionReject))
	be.ResetCalls()

	p := Load(ctx, client, token)
	assert.Equal(t, StateAlreadyResponded, p.State())
	for _, a := range Actions {
		assert.ErrorIs(t, p.Respond(ctx, a), ErrAlreadyResponded)
	}
	assert.Equal(t, 0, be.CallCount(respondCalls))
	assert.Equal(t, api.ContractRejected, be.ContractStatusOf(token))
}

func TestRespondedElsewhere(t *testing.T) {
	be, client, token := setup(t)
	ctx := context.Background()

	first, second := Load(ctx, client, token), Load(ctx, client, token)
	require.NoError(t, first.Respond(ctx, api.ActionAccept))

	assert.ErrorIs(t, second.Respond(ctx, api.ActionReject), ErrAlreadyResponded)
	assert.Equal(t, StateAlreadyResponded, second.State())
	assert.Equal(t, api.ContractAccepted, be.ContractStatusOf(token))
}

func TestConnectOffersCompose(t *testing.T) {
	_, client, token := setup(t)
	ctx := context.Background()

	p := Load(ctx, client, token)
	require.NoError(t, p.Respond(ctx, api.ActionConnect))

	v := p.View()
	assert.Equal(t, api.ContractConnected, v.Status)
	assert.Equal(t, apitest.DefaultBrandEmail, v.BrandEmail)
	assert.True(t, strings.HasPrefix(v.ComposeURL, "mailto:"+apitest.DefaultBrandEmail+"?subject="), v.ComposeURL)
}

func TestConnectWithoutBrandEmail(t *testing.T) {
	be, client, token := setup(t)
	be.BrandEmail = ""
	ctx := context.Background()

	p := Load(ctx, client, token)
	require.NoError(t, p.Respond(ctx, api.ActionConnect))

	v := p.View()
	assert.Equal(t, StateResponded, v.State)
	assert.Empty(t, v.BrandEmail)
	assert.Empty(t, v.ComposeURL)
}

func TestUnknownToken(t *testing.T) {
	be, client, _ := setup(t)
	ctx := context.Background()

	p := Load(ctx, client, "not-a-token")
	assert.Equal(t, StateNotFound, p.State())
	assert.Nil(t, p.View().Contract)
	assert.ErrorIs(t, p.Respond(ctx, api.ActionAccept), ErrNotFound)
	assert.Equal(t, 0, be.CallCount(respondCalls))

	be.ResetCalls()
	p = Load(ctx, client, "")
	assert.Equal(t, StateNotFound, p.State())
	assert.Empty(t, be.Calls())
}

func TestInvalidActionIsValidatedLocally(t *testing.T) {
	be, client, token := setup(t)
	ctx := context.Background()

	p := Load(ctx, client, token)
	err := p.Respond(ctx, "maybe")
	assert.True(t, api.IsValidation(err), err)
	assert.Equal(t, 0, be.CallCount(respondCalls))
	assert.Equal(t, StateReady, p.State())
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	p := Load(context.Background(), api.New(url), "token")
	assert.Equal(t, StateFailed, p.State())
	assert.NotEmpty(t, p.View().Message)
}

func TestCanTransition(t *testing.T) {
	for _, tc := range []struct {
		from, to api.ContractStatus
		ok       bool
	}{
		{api.ContractPending, api.ContractAccepted, true},
		{api.ContractPending, api.ContractRejected, true},
		{api.ContractPending, api.ContractConnected, true},
		{api.ContractPending, api.ContractPending, false},
		{api.ContractAccepted, api.ContractRejected, false},
		{api.ContractRejected, api.ContractAccepted, false},
		{api.ContractConnected, api.ContractAccepted, false},
	} {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
