// Package suite loads check suites: YAML files that pair recorded responses
// with the success and failure expectations of an assertions.ApiAssertion.
//
//	variables:
//	  created: 201
//	checks:
//	  - name: create user
//	    response: fixtures/created.yaml
//	    success: {status: "{{created}}"}
//	    onSuccess:
//	      - {path: data.id, exists: true}
//	    conditionalFailures:
//	      - when: {status: 400}
//	        expect:
//	          - {path: error.code, equals: BAD_REQUEST}
//
// Paths are relative to the suite file. Variables come from the suite, a
// .env file beside it, and {{$ENV}} references.
package suite
