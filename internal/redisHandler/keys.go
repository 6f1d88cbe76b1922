package redishandler

import "strings"

// Key layout:
//
//	<collection>:<id>            record hash
//	<collection>:ids             insertion-ordered id list
//	<collection>:form:<formId>   per-election id list (candidates, votes)
//	unique:<collection>:<field>  hash of unique value -> record id
func recordKey(collection, id string) string { return collection + ":" + id }

func idsKey(collection string) string { return collection + ":ids" }

func formKey(collection, formID string) string { return collection + ":form:" + formID }

func uniqueKey(collection, field string) string { return "unique:" + collection + ":" + field }

func voteTuple(candidateUID, voterID, formID string) string {
	return strings.Join([]string{candidateUID, voterID, formID}, "|")
}
