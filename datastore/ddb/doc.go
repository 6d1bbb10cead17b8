/*
Package ddb provides a DynamoDB implementation of the datastore.Engine interface.

The DynamodbEngine supports:
  - Single-table design: every logical table shares one DynamoDB table
  - Generated keys from an atomic per-table counter item
  - Automatic EntityType injection for polymorphic storage
  - Any client satisfying API, so tests can run without AWS

Item Layout:

	PK         = "<table>#<key>"  // e.g. "person#1"
	SK         = "<table>"        // e.g. "person"
	EntityType = "<table>"
	<column>   = one attribute per mapped column

	PK = "SEQ#<table>", SK = "#SEQ", Seq = N  // id counter

Usage:

	engine, err := ddb.NewDynamodbEngine(ctx, ddb.Credentials{
	    AccessKey: os.Getenv("AWS_ACCESS_KEY"),
	    SecretKey: os.Getenv("AWS_SECRET_KEY"),
	    Region:    os.Getenv("AWS_REGION"),
	}, os.Getenv("AWS_DDB_TABLE"))

	db := dorm.New(engine)

The DynamoDB table must exist with a string partition key PK and a string
sort key SK.
*/
package ddb
