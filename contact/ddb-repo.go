package contact

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// feedIndexName is the GSI with constant partition key gsi1_pk = 1 and
// sort key gsi1_sk, which orders all submissions by time.
const feedIndexName = "gsi1"

// ddbOpTimeout bounds every primary-store call so a slow or partitioned
// table degrades to the fallback tier instead of hanging the request.
const ddbOpTimeout = 3 * time.Second

// DynamoDbContactsTable persists submissions to the DynamoDB table.
type DynamoDbContactsTable struct {
	ddbClient     *dynamodb.Client
	tableName     string
	contactsTable dynamo.Table
}

// NewDynamoDbContactsTable initializes a new DynamoDbContactsTable.
func NewDynamoDbContactsTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbContactsTable {
	ddb := &DynamoDbContactsTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	ddb.contactsTable = db.Table(ddb.tableName)

	return ddb
}

// Save writes the submission, assigning id and submittedAt server-side.
func (ddb *DynamoDbContactsTable) Save(ctx context.Context, subm Submission) (Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, ddbOpTimeout)
	defer cancel()

	subm.ID = uuid.New().String()
	subm.SubmittedAt = time.Now().UTC()
	if subm.Status == "" {
		subm.Status = StatusNew
	}

	row := rowFromSubm(subm)
	err := ddb.contactsTable.Put(row).If("attribute_not_exists(id)").Run(ctx)
	if err != nil {
		return Submission{}, err
	}

	return subm, nil
}

// List reads all submissions via the feed index, newest first.
func (ddb *DynamoDbContactsTable) List(ctx context.Context) ([]Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, ddbOpTimeout)
	defer cancel()

	var rows []ContactRow
	err := ddb.contactsTable.Get("gsi1_pk", 1).
		Index(feedIndexName).
		Order(dynamo.Descending).
		All(ctx, &rows)
	if err != nil {
		return nil, err
	}

	subms := make([]Submission, 0, len(rows))
	for _, row := range rows {
		subm, err := submFromRow(row)
		if err != nil {
			return nil, err
		}
		subms = append(subms, subm)
	}
	return subms, nil
}

// UpdateStatus sets the status of one submission with optimistic locking.
// Returns nil when the submission does not exist.
func (ddb *DynamoDbContactsTable) UpdateStatus(ctx context.Context, id string, status Status) (*Submission, error) {
	ctx, cancel := context.WithTimeout(ctx, ddbOpTimeout)
	defer cancel()

	var row ContactRow
	err := ddb.contactsTable.Update("id", id).
		Set("status", string(status)).
		Add("version", 1).
		If("attribute_exists(id)").
		Value(ctx, &row)
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, nil
		}
		return nil, err
	}

	subm, err := submFromRow(row)
	if err != nil {
		return nil, err
	}
	return &subm, nil
}

// Ping probes table reachability. Used by the fallback store's
// connection-state probe, never on the request path.
func (ddb *DynamoDbContactsTable) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ddbOpTimeout)
	defer cancel()

	_, err := ddb.ddbClient.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(ddb.tableName),
	})
	return err
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
