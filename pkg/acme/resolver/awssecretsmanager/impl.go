package awssecretsmanager

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Cloud-Foundations/Dominator/lib/log"
	"github.com/Cloud-Foundations/Dominator/lib/log/nulllogger"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/arn"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

const (
	defaultMaximumAge = 5 * time.Minute
	minimumRefetch    = time.Second
)

func getRegion(secretId string) (string, error) {
	if arn, err := arn.Parse(secretId); err == nil {
		return arn.Region, nil
	}
	metadataSession, err := session.NewSession()
	if err != nil {
		return "", fmt.Errorf("error creating metadata session: %s", err)
	}
	return ec2metadata.New(metadataSession).Region()
}

func newResolver(secretId string, maximumAge time.Duration,
	logger log.DebugLogger) (*Resolver, error) {
	if secretId == "" {
		return nil, errors.New("no AWS secret ID specified")
	}
	region, err := getRegion(secretId)
	if err != nil {
		return nil, err
	}
	awsSession, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("error creating session: %s", err)
	}
	if awsSession == nil {
		return nil, errors.New("awsSession == nil")
	}
	return newResolverWithService(secretsmanager.New(awsSession), secretId,
		maximumAge, logger), nil
}

func newResolverWithService(awsService secretsmanageriface.SecretsManagerAPI,
	secretId string, maximumAge time.Duration,
	logger log.DebugLogger) *Resolver {
	if logger == nil {
		logger = nulllogger.New()
	}
	if maximumAge <= 0 {
		maximumAge = defaultMaximumAge
	}
	return &Resolver{
		awsService: awsService,
		logger:     logger,
		maximumAge: maximumAge,
		secretId:   secretId,
	}
}

func (r *Resolver) fetch() (map[string]string, error) {
	input := secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.secretId),
	}
	output, err := r.awsService.GetSecretValue(&input)
	if err != nil {
		return nil,
			fmt.Errorf("error calling secretsmanager:GetSecretValue: %s", err)
	}
	if output.SecretString == nil {
		return nil, errors.New("no SecretString in secret")
	}
	var responses map[string]string
	err = json.Unmarshal([]byte(*output.SecretString), &responses)
	if err != nil {
		return nil, fmt.Errorf("error unmarshaling secret: %s", err)
	}
	r.logger.Debugf(1, "fetched AWS Secret: %s, %d responses\n",
		r.secretId, len(responses))
	return responses, nil
}

func (r *Resolver) resolve(token string) (interface{}, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	age := time.Since(r.fetchTime)
	if r.responses != nil && age < r.maximumAge {
		if response, ok := r.responses[token]; ok {
			return response, nil
		}
		if age < minimumRefetch {
			return nil, nil
		}
	}
	responses, err := r.fetch()
	if err != nil {
		return nil, err
	}
	r.fetchTime = time.Now()
	r.responses = responses
	if response, ok := responses[token]; ok {
		return response, nil
	}
	return nil, nil
}
