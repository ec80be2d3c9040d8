package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	grpccontext "github.com/dtroode/superapp-gateway/internal/api/grpc/context"
	"github.com/dtroode/superapp-gateway/internal/api/grpc/handler"
	"github.com/dtroode/superapp-gateway/internal/crypto"
	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/ratelimit"
	"github.com/dtroode/superapp-gateway/internal/repository/memory"
	"github.com/dtroode/superapp-gateway/internal/revocation"
	"github.com/dtroode/superapp-gateway/internal/service"
	"github.com/dtroode/superapp-gateway/internal/testutil"
	"github.com/dtroode/superapp-gateway/internal/token"
)

type fixture struct {
	client   *handler.CredentialsClient
	conn     *grpc.ClientConn
	tokens   *service.TokenService
	vault    *service.Vault
	identity model.Identity
}

func newFixture(t *testing.T, limit int) *fixture {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	identities := memory.NewIdentityRepository()
	cipher, err := crypto.NewCipher("grpc-router-secret")
	require.NoError(t, err)

	tokens := service.NewTokenService(token.NewJWT("jwt-secret"), revocation.NewMemory(time.Minute), lg)
	vault := service.NewVault(memory.NewCredentialRepository(), cipher, lg)
	g := gate.New(tokens, identities, ratelimit.NewSlidingWindow(limit, time.Minute), lg)
	cm := grpccontext.NewManager()

	identity, err := identities.Create(context.Background(), model.Identity{
		Email:    "svc@example.com",
		Name:     "Service",
		Role:     model.RoleStandard,
		IsActive: true,
	})
	require.NoError(t, err)

	r := New(handler.NewCredentials(vault, tokens, identities, cm, lg), g, cm, "token", lg)
	srv := r.Register()

	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{
		client:   handler.NewCredentialsClient(conn),
		conn:     conn,
		tokens:   tokens,
		vault:    vault,
		identity: identity,
	}
}

func (f *fixture) authed(t *testing.T) context.Context {
	t.Helper()
	access, _, err := f.tokens.IssueAccess(f.identity.ID)
	require.NoError(t, err)
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+access)
}

func TestRouter_HealthWithoutAuth(t *testing.T) {
	f := newFixture(t, 10)

	resp, err := grpc_health_v1.NewHealthClient(f.conn).Check(context.Background(), &grpc_health_v1.HealthCheckRequest{
		Service: handler.CredentialsServiceName,
	})

	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.Status)
}

func TestRouter_IntrospectWithoutAuth(t *testing.T) {
	f := newFixture(t, 10)
	access, _, err := f.tokens.IssueAccess(f.identity.ID)
	require.NoError(t, err)

	out, err := f.client.Introspect(context.Background(), access)
	require.NoError(t, err)
	assert.True(t, out.GetFields()["active"].GetBoolValue())
	assert.Equal(t, f.identity.ID.String(), out.GetFields()["identity_id"].GetStringValue())

	require.NoError(t, f.tokens.Revoke(context.Background(), access))

	out, err = f.client.Introspect(context.Background(), access)
	require.NoError(t, err)
	assert.False(t, out.GetFields()["active"].GetBoolValue())
}

func TestRouter_QuotaRequiresAuth(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.client.Quota(context.Background(), "google")

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestRouter_ReportUsage(t *testing.T) {
	f := newFixture(t, 10)
	limit := int64(500)
	cred, err := f.vault.Register(context.Background(), model.RegisterCredentialParams{
		OwnerID:      f.identity.ID,
		Service:      model.ServiceGoogle,
		PlaintextKey: "AIzaSyExample-Key-1234",
		QuotaLimit:   &limit,
	})
	require.NoError(t, err)

	usage, err := structpb.NewStruct(map[string]any{"service": "google", "amount": 120})
	require.NoError(t, err)

	out, err := f.client.ReportUsage(f.authed(t), usage)
	require.NoError(t, err)
	assert.Equal(t, cred.ID.String(), out.GetFields()["credential_id"].GetStringValue())
	assert.Equal(t, float64(380), out.GetFields()["quota_remaining"].GetNumberValue())

	out, err = f.client.Quota(f.authed(t), "google")
	require.NoError(t, err)
	assert.Equal(t, float64(120), out.GetFields()["quota_used"].GetNumberValue())
}

func TestRouter_Throttled(t *testing.T) {
	f := newFixture(t, 1)
	ctx := f.authed(t)

	_, err := f.client.Quota(ctx, "google")
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = f.client.Quota(ctx, "google")
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}

func TestRouter_UnknownIdentity(t *testing.T) {
	f := newFixture(t, 10)
	access, _, err := f.tokens.IssueAccess(uuid.New())
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+access)

	_, err = f.client.Quota(ctx, "google")

	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
