package data

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

var (
	ssmRepository SSMRepository
)

type MockSSMClient struct {
	TestSuccess bool
	Paths       []string
}

func InitializeSSMClient(mock *MockSSMClient) SSMRepository {
	return &SSMDao{
		SSM:    mock,
		Logger: logrus.New(),
	}
}

func (m *MockSSMClient) GetParametersByPath(ctx context.Context, input *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	m.Paths = append(m.Paths, aws.ToString(input.Path))
	if !m.TestSuccess {
		return nil, errors.New("error in GetParametersByPath")
	}
	if input.NextToken == nil {
		return &ssm.GetParametersByPathOutput{
			Parameters: []types.Parameter{
				{Name: aws.String("/timebank/SEVERA_BASE_URL"), Value: aws.String("https://severa.example.com")},
			},
			NextToken: aws.String("page-2"),
		}, nil
	}
	return &ssm.GetParametersByPathOutput{
		Parameters: []types.Parameter{
			{Name: aws.String("/timebank/SEVERA_CLIENT_ID"), Value: aws.String("client")},
		},
	}, nil
}

func Test_GetParameters_Success(t *testing.T) {
	//Arrange
	mock := &MockSSMClient{TestSuccess: true}
	ssmRepository = InitializeSSMClient(mock)

	//Act
	actual, err := ssmRepository.GetParameters(context.Background())

	//Assert
	assert.NoError(t, err)
	assert.Equal(t, "https://severa.example.com", actual["/timebank/SEVERA_BASE_URL"])
	assert.Equal(t, "client", actual["/timebank/SEVERA_CLIENT_ID"])
	assert.Equal(t, []string{"/timebank", "/timebank"}, mock.Paths)
}

func Test_GetParameters_Failure(t *testing.T) {
	//Arrange
	ssmRepository = InitializeSSMClient(&MockSSMClient{TestSuccess: false})
	expected := "error in GetParametersByPath"

	//Act
	_, actual := ssmRepository.GetParameters(context.Background())

	//Assert
	assert.Equal(t, expected, actual.Error())
}
