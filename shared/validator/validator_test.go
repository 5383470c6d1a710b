package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"villa/shared/constant"
	"villa/shared/failure"
	"villa/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type season string

func (s season) IsValid() bool {
	return s == "high" || s == "low"
}

type stayRequest struct {
	GuestName  string `json:"guest_name"  validate:"required,max=20"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
	Guests     int    `json:"guests"      validate:"gte=1,lte=8"`
	Season     season `json:"season"      validate:"enum"`
}

type photoRequest struct {
	Image *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=1"`
}

func photo(contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "terrace.png",
		Size:     size,
		Header:   textproto.MIMEHeader{constant.RequestHeaderContentType: []string{contentType}},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid stay",
			body: `{"guest_name":"Ann","guest_email":"ann@example.com","guests":4,"season":"high"}`,
		},
		{
			name:    "malformed json",
			body:    `{"guest_name":`,
			wantErr: "failed to decode request body",
		},
		{
			name:    "every failed field is reported by its json name",
			body:    `{"guest_email":"nope","guests":9,"season":"high"}`,
			wantErr: "guest_name is required; guest_email must be a valid email address; guests must be less than or equal to 8",
		},
		{
			name:    "typed enum",
			body:    `{"guest_name":"Ann","guest_email":"ann@example.com","guests":2,"season":"monsoon"}`,
			wantErr: "season has an unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := stayRequest{}

			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, 4, req.Guests)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStruct_Uploads(t *testing.T) {
	tests := []struct {
		name    string
		image   *multipart.FileHeader
		wantErr string
	}{
		{name: "png under the limit", image: photo("image/png", 512*1024)},
		{name: "jpg alias accepted", image: photo("image/jpg", 1024)},
		{name: "gif rejected", image: photo("image/gif", 1024), wantErr: "image must be one of image/png image/jpeg"},
		{name: "too large", image: photo("image/png", 2*1024*1024), wantErr: "image must be at most 1 MB"},
		{name: "missing", image: nil, wantErr: "image is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&photoRequest{Image: tt.image})

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("guest@example.com", "email"))

	err := validator.ValidateVar("", "required")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
