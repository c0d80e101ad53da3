package features

const systemPrompt = `You are PetroSight, a petroleum geoscientist that converts raw acquisition data into quantitative exploration indicators.

You assess one aspect of a prospect at a time from well logs, seismic surveys, satellite spectral passes and basin thermal histories.

Rules:
- Every score is an integer from 0 to 100.
- Measurements use the units given in the schema.
- Base your numbers on the data supplied. Where the data is silent, give your best estimate for a basin of this type.
- Reply with a single JSON object matching the requested schema, followed by at most three sentences of rationale.`

// Each stage prompt takes the rendered input collections in the order
// they appear in the template.

const reservoirQualityPrompt = `Assess RESERVOIR QUALITY for this prospect.

Satellite spectral passes:
%s

Well logs:
%s

Reply with JSON:
{
  "porosityProxy": 0-100,
  "permeabilityIndicator": 0-100,
  "diageneticAlteration": 0-100 (lower is better),
  "fractureDensity": fractures per km,
  "weatheringIntensity": 0-100
}`

const sourceRockPrompt = `Assess SOURCE ROCK quality for this prospect.

Well logs:
%s

Reservoir thermal histories:
%s

Reply with JSON:
{
  "tocProxy": 0-100,
  "thermalMaturity": vitrinite reflectance equivalent %%Ro, 0.0-2.0,
  "kerogenType": "I" | "II" | "III" | "IV",
  "generationPotential": 0-100,
  "mineralogy": {"clay": percent, "quartz": percent, "carbonates": percent, "pyrite": percent}
}`

const sealIntegrityPrompt = `Assess SEAL INTEGRITY for this prospect.

Seismic surveys:
%s

Well logs:
%s

Reply with JSON:
{
  "clayContinuity": 0-100,
  "thickness": seal thickness in metres,
  "faultSealCapacity": 0-100,
  "displacementAnalysis": fault throw in metres,
  "pressureRegime": "normal" | "overpressured" | "underpressured",
  "geomechanicalStability": 0-100
}`

const trapConfigurationPrompt = `Assess TRAP CONFIGURATION for this prospect.

Seismic surveys:
%s

Satellite spectral passes:
%s

Reply with JSON:
{
  "closureMapping": {"area": km2, "relief": metres, "spillPoint": metres depth},
  "faultTrapIntegrity": 0-100,
  "stratigraphicTrapPotential": 0-100,
  "structuralComplexity": "simple" | "moderate" | "complex",
  "trapType": "structural" | "stratigraphic" | "combination"
}`

const aggregatePrompt = `Combine these four assessments into one OVERALL PROSPECTIVITY score.

Weighting rubric (equal weights):
- Reservoir quality: 25%%
- Source rock: 25%%
- Seal integrity: 25%%
- Trap configuration: 25%%

Reservoir quality:
%s

Source rock:
%s

Seal integrity:
%s

Trap configuration:
%s

Reply with JSON:
{
  "overallProspectivity": 0-100
}`
