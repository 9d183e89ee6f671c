package s3store

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/cfgx/store"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.GetObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.HeadObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func keyIs(key string) func(*s3.GetObjectInput) bool {
	return func(in *s3.GetObjectInput) bool {
		return aws.ToString(in.Bucket) == "configs" && aws.ToString(in.Key) == key
	}
}

func TestStore_Save(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	s := NewWithClient(client, "configs", "prod/")

	var uploaded []byte
	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "configs" &&
			aws.ToString(in.Key) == "prod/services/api.yaml" &&
			aws.ToString(in.ContentType) == ContentType
	})).Run(func(args mock.Arguments) {
		uploaded, _ = io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, s.Save(ctx, "services/api", []byte("port: 80\n")))
	assert.Equal(t, "port: 80\n", string(uploaded))
	client.AssertExpectations(t)
}

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	s := NewWithClient(client, "configs", "")

	client.On("GetObject", ctx, mock.MatchedBy(keyIs("app.yaml"))).
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader("name: app\n"))}, nil).Once()
	client.On("GetObject", ctx, mock.MatchedBy(keyIs("missing.yaml"))).
		Return(nil, &types.NoSuchKey{}).Once()
	client.On("GetObject", ctx, mock.MatchedBy(keyIs("broken.yaml"))).
		Return(nil, errors.New("throttled")).Once()

	data, err := s.Load(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, "name: app\n", string(data))

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Load(ctx, "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "throttled")

	client.AssertExpectations(t)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	client := new(mockClient)
	s := NewWithClient(client, "configs", "")

	client.On("HeadObject", ctx, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "app.yaml"
	})).Return(&s3.HeadObjectOutput{}, nil).Once()
	client.On("DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "app.yaml"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()
	client.On("HeadObject", ctx, mock.MatchedBy(func(in *s3.HeadObjectInput) bool {
		return aws.ToString(in.Key) == "gone.yaml"
	})).Return(nil, &types.NotFound{}).Once()

	require.NoError(t, s.Delete(ctx, "app"))
	assert.ErrorIs(t, s.Delete(ctx, "gone"), store.ErrNotFound)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "gone.yaml"
	}))
}

func TestStore_InvalidName(t *testing.T) {
	client := new(mockClient)
	s := NewWithClient(client, "configs", "")

	assert.ErrorIs(t, s.Save(context.Background(), "../x", nil), store.ErrInvalidName)
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
